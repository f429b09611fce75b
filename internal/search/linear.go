package search

// Linear 对 find 中每个名字完整扫描一遍目录（原顺序），每次名字相等即计数一次。
// 扫描命中后不提前退出：目录中重复的名字会被重复计数，因此 Matches 可能大于 len(find)。
func Linear(clk Clock, find, directory []string) Result {
	clk = orSystem(clk)
	t0 := clk.Now()
	matches := 0
	for _, want := range find {
		for _, entry := range directory {
			if want == Name(entry) {
				matches++
			}
		}
	}
	return Result{Matches: matches, Elapsed: clk.Now().Sub(t0)}
}
