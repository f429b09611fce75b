package search

import "time"

// Clock 为墙钟采样源。计时只用于报告与冒泡排序的预算判定，不参与调度。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用 time.Now（含单调时钟读数）。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func orSystem(clk Clock) Clock {
	if clk == nil {
		return SystemClock{}
	}
	return clk
}

// Result: 各检索策略统一的结果（命中数 + 耗时）。
type Result struct {
	Matches int
	Elapsed time.Duration
}

// Millis 以整数毫秒返回耗时（截断）。
func (r Result) Millis() int64 { return r.Elapsed.Milliseconds() }
