package search

import "time"

// DefaultBudgetFactor: 冒泡排序预算 = 线性检索耗时 × 3。
const DefaultBudgetFactor = 3

// Budget 由线性检索耗时推导冒泡排序的时间预算，按整数毫秒计：
// 线性耗时先截断到毫秒再乘 factor，不足 1ms 的线性耗时得到 0 预算。factor < 1 时按 DefaultBudgetFactor。
func Budget(linear time.Duration, factor int) time.Duration {
	if factor < 1 {
		factor = DefaultBudgetFactor
	}
	return time.Duration(linear.Milliseconds()*int64(factor)) * time.Millisecond
}

// BubbleSort 按名字升序对目录副本做经典冒泡排序（整轮无交换即结束）。
//
// 每次内层比较前检查墙钟：自开始起的整数毫秒耗时超过 budget 的整数毫秒即放弃，
// 返回 (nil, false)，绝不把部分有序的结果当作完成返回。不足 1ms 的预算视为没有任何预算，
// 长度 >= 2 的输入在第一次比较前即放弃。成功时返回新切片，输入不被修改。
func BubbleSort(clk Clock, directory []string, budget time.Duration) ([]string, bool) {
	clk = orSystem(clk)
	limit := budget.Milliseconds()
	start := clk.Now()
	list := make([]string, len(directory))
	copy(list, directory)
	for swapped := true; swapped; {
		swapped = false
		for i := 0; i+1 < len(list); i++ {
			if limit <= 0 || clk.Now().Sub(start).Milliseconds() > limit {
				return nil, false
			}
			if Name(list[i]) > Name(list[i+1]) {
				list[i], list[i+1] = list[i+1], list[i]
				swapped = true
			}
		}
	}
	return list, true
}
