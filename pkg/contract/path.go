package contract

import (
	"path"
	"strings"
)

// NormalizeFileID 规范化路径为跨平台稳定的 FileID。
// 反斜杠统一为正斜杠，再按 POSIX 语义 Clean；不做隐式绝对化。
func NormalizeFileID(p string) FileID {
	if p == "-" {
		return FileID("stdin")
	}
	return FileID(path.Clean(strings.ReplaceAll(p, "\\", "/")))
}
