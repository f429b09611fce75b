package contract

// FileID: 输入源标识（规范化路径；STDIN 固定为 "stdin"）。
type FileID string

// Input: 一次性加载的行序列（电话簿目录或查找名单）。
// 约束：
// - Lines 保持源文件顺序；
// - 行尾 CRLF 已归一为 LF 并去除换行符；
// - 空行原样保留（不做业务清洗）。
type Input struct {
	ID    FileID
	Lines []string
}

// Len 返回行数。
func (in Input) Len() int { return len(in.Lines) }
