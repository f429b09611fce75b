package search

import (
	"strings"
	"unicode"
)

// Name 去掉目录行开头连续的数字与空格，返回剩余部分（内部空格原样保留）。
// 纯函数且幂等：Name(Name(s)) == Name(s)。整行均为数字/空格时返回空串。
func Name(entry string) string {
	return strings.TrimLeftFunc(entry, isPrefixRune)
}

// Number 去掉目录行尾部所有非数字字符（含空格），返回剩余前缀。
// 对 "<number> <name>" 形式即为号码；名字中含数字时保留到最后一个数字为止。
func Number(entry string) string {
	return strings.TrimRightFunc(entry, func(r rune) bool { return !unicode.IsDigit(r) })
}

// Names 返回目录行的名字序列（顺序不变）。
func Names(entries []string) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = Name(e)
	}
	return out
}

func isPrefixRune(r rune) bool { return r == ' ' || unicode.IsDigit(r) }
