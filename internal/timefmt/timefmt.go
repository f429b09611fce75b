// Package timefmt 把毫秒耗时格式化为 "M min. SS sec. MMM ms."。
package timefmt

import "fmt"

// Format 秒补齐两位、毫秒补齐三位，分钟不补齐也不按小时回绕。负值不在预期内，按绝对值处理。
func Format(ms int64) string {
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%d min. %02d sec. %03d ms.", ms/60000, ms/1000%60, ms%1000)
}

