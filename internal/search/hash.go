package search

import "time"

// Table: 名字 → 号码 的哈希表。重复名字后写覆盖先写（目录顺序决定胜者）。
type Table struct {
	m map[string]string
}

// BuildTable 由目录行构建 Table。
func BuildTable(directory []string) *Table {
	t := &Table{m: make(map[string]string, len(directory))}
	for _, e := range directory {
		t.m[Name(e)] = Number(e)
	}
	return t
}

// Lookup 返回名字对应的号码。
func (t *Table) Lookup(name string) (string, bool) {
	n, ok := t.m[name]
	return n, ok
}

// Contains 成员测试。
func (t *Table) Contains(name string) bool {
	_, ok := t.m[name]
	return ok
}

// Len 为不同名字的数量。
func (t *Table) Len() int { return len(t.m) }

// HashResult: 构建与查找分别计时；Elapsed = Build + Search。
type HashResult struct {
	Result
	Build  time.Duration
	Search time.Duration
}

// Hash 构建哈希表并对 find 做成员测试。
func Hash(clk Clock, find, directory []string) HashResult {
	clk = orSystem(clk)
	t0 := clk.Now()
	table := BuildTable(directory)
	t1 := clk.Now()
	matches := 0
	for _, want := range find {
		if table.Contains(want) {
			matches++
		}
	}
	t2 := clk.Now()
	build, lookup := t1.Sub(t0), t2.Sub(t1)
	return HashResult{
		Result: Result{Matches: matches, Elapsed: build + lookup},
		Build:  build,
		Search: lookup,
	}
}
