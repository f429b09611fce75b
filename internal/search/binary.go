package search

// BinarySearch 在升序名字序列中做经典二分查找；存在即 true（含首尾元素），空序列为 false。
// 重复名字只要有一个命中即为 true，不关心命中的是哪一个。
func BinarySearch(target string, names []string) bool {
	lo, hi := 0, len(names)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case names[mid] == target:
			return true
		case names[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return false
}

// Binary 对 find 逐个执行 BinarySearch 并计时；names 需已去掉号码并升序。
func Binary(clk Clock, find, names []string) Result {
	clk = orSystem(clk)
	t0 := clk.Now()
	matches := 0
	for _, want := range find {
		if BinarySearch(want, names) {
			matches++
		}
	}
	return Result{Matches: matches, Elapsed: clk.Now().Sub(t0)}
}
