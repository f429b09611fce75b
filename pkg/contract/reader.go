package contract

import "context"

// LineReader: 行源抽象（文件或 STDIN）。
// 约束：
// 1) 一次读入全部行，返回后立即释放句柄；
// 2) 不解析 "<number> <name>" 结构，仅提供原始行；
// 3) 不在内部起并发。
type LineReader interface {
	ReadLines(ctx context.Context, path string) (Input, error)
}
