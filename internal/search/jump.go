package search

import "math"

// JumpSearch 在按名字升序排列的目录中查找 target。
//
// 步长 floor(sqrt(n))；先检查下标 0，然后按步长前跳：
//   - 命中即返回 true；
//   - 越过目标（名字 > target）时，回扫最近一个块内部，找不到即确定不存在；
//   - 跳跃结束仍未越过时，顺扫最后不足一个步长的尾块。
//
// 空目录返回 false。
func JumpSearch(target string, sorted []string) bool {
	n := len(sorted)
	if n == 0 {
		return false
	}
	if Name(sorted[0]) == target {
		return true
	}
	step := int(math.Sqrt(float64(n)))
	prev := 0
	for cur := step; cur < n; cur += step {
		name := Name(sorted[cur])
		if name == target {
			return true
		}
		if name > target {
			for i := cur - 1; i > prev; i-- {
				if Name(sorted[i]) == target {
					return true
				}
			}
			return false
		}
		prev = cur
	}
	for i := prev + 1; i < n; i++ {
		if Name(sorted[i]) == target {
			return true
		}
	}
	return false
}

// Jump 对 find 逐个执行 JumpSearch 并计时。
func Jump(clk Clock, find, sorted []string) Result {
	clk = orSystem(clk)
	t0 := clk.Now()
	matches := 0
	for _, want := range find {
		if JumpSearch(want, sorted) {
			matches++
		}
	}
	return Result{Matches: matches, Elapsed: clk.Now().Sub(t0)}
}
