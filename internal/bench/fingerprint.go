package bench

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Fingerprint 为行序列的 64 位 xxh3 摘要（每行后追加 '\n'），十六进制定长 16 位。
// 用于确认两次运行的输入完全一致；顺序敏感。
func Fingerprint(lines []string) string {
	h := xxh3.New()
	for _, l := range lines {
		_, _ = h.WriteString(l)
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
