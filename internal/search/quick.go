package search

// QuickSort 返回按名字升序的新序列，不修改输入。
// 枢轴取中间元素（下标 n/2）的名字；按 小于/等于/大于 三路划分后递归，
// 结果为 sort(less) + equal + sort(greater)。组内相对顺序不作保证。
func QuickSort(directory []string) []string {
	if len(directory) < 2 {
		out := make([]string, len(directory))
		copy(out, directory)
		return out
	}
	pivot := Name(directory[len(directory)/2])
	var less, equal, greater []string
	for _, e := range directory {
		switch name := Name(e); {
		case name < pivot:
			less = append(less, e)
		case name > pivot:
			greater = append(greater, e)
		default:
			equal = append(equal, e)
		}
	}
	out := make([]string, 0, len(directory))
	out = append(out, QuickSort(less)...)
	out = append(out, equal...)
	return append(out, QuickSort(greater)...)
}
