package contract

// Line: 一行面向用户的输出。
// Phase 标识产生该行的阶段（linear|bubble_jump|quick_binary|hash）；Text 为最终文本（可为空行）。
type Line struct {
	Phase string
	Text  string
}

// Sink: 控制台输出抽象。
// 实现需保证按 Emit 调用顺序输出；Flush 在运行结束时调用一次。
type Sink interface {
	Emit(l Line) error
	Flush() error
}
