package search

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock 每次 Now 前进固定步长，使计时结果可预测。
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{t: time.Unix(0, 0), step: step}
}

func TestName(t *testing.T) {
	cases := map[string]string{
		"555 Abe":            "Abe",
		"8 Mary Ann Smith":   "Mary Ann Smith",
		"123   Zoe":          "Zoe",
		"Bob":                "Bob",
		"  42 Bob":           "Bob",
		"4242":               "",
		"   ":                "",
		"":                   "",
		"12 R2D2":            "R2D2",
		"7 Bob 3":            "Bob 3",
		"1\tTab":             "\tTab",
	}
	for in, want := range cases {
		assert.Equal(t, want, Name(in), "Name(%q)", in)
	}
}

func TestNameIdempotentAndPrefix(t *testing.T) {
	for _, s := range []string{"Abe", "Mary Ann", "X 1 2", "", "é 9"} {
		for _, prefix := range []string{"", "1", "123 ", "9 9 9   "} {
			assert.Equal(t, s, Name(prefix+s))
		}
		assert.Equal(t, Name(s), Name(Name(s)))
	}
	for _, s := range []string{"12 34 5", "77 Abe", " 0 x"} {
		assert.Equal(t, Name(s), Name(Name(s)))
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1", Number("1 Alice"))
	assert.Equal(t, "555", Number("555 Abe Lincoln"))
	assert.Equal(t, "7 Bob 3", Number("7 Bob 3 "))
	assert.Equal(t, "", Number("Nobody"))
	assert.Equal(t, "", Number(""))
}

func TestNames(t *testing.T) {
	in := []string{"1 B", "2 A"}
	assert.Equal(t, []string{"B", "A"}, Names(in))
	assert.Equal(t, []string{"1 B", "2 A"}, in)
	assert.Empty(t, Names(nil))
}

func TestLinearCountsDuplicates(t *testing.T) {
	dir := []string{"1 Alice", "2 Bob", "3 Alice"}
	res := Linear(nil, []string{"Alice"}, dir)
	require.Equal(t, 2, res.Matches)

	res = Linear(nil, []string{"Alice", "Bob", "Carol"}, dir)
	require.Equal(t, 3, res.Matches)
}

func TestLinearElapsed(t *testing.T) {
	clk := newStepClock(7 * time.Millisecond)
	res := Linear(clk, []string{"Zoe"}, []string{"1 Zoe"})
	require.Equal(t, 1, res.Matches)
	require.Equal(t, 7*time.Millisecond, res.Elapsed)
	require.EqualValues(t, 7, res.Millis())
}

func TestLinearEmpty(t *testing.T) {
	assert.Zero(t, Linear(nil, nil, []string{"1 A"}).Matches)
	assert.Zero(t, Linear(nil, []string{"A"}, nil).Matches)
}

func TestBudget(t *testing.T) {
	assert.Equal(t, 30*time.Millisecond, Budget(10*time.Millisecond, 3))
	assert.Equal(t, 30*time.Millisecond, Budget(10*time.Millisecond, 0))
	assert.Equal(t, 50*time.Millisecond, Budget(10*time.Millisecond, 5))
	assert.Zero(t, Budget(0, 3))
	// 线性耗时先截断到毫秒
	assert.Zero(t, Budget(900*time.Microsecond, 3))
	assert.Equal(t, 3*time.Millisecond, Budget(1900*time.Microsecond, 3))
}

func TestBubbleSortSorts(t *testing.T) {
	dir := shuffled(200, 1)
	orig := append([]string(nil), dir...)
	out, ok := BubbleSort(nil, dir, time.Hour)
	require.True(t, ok)
	assert.True(t, sort.StringsAreSorted(Names(out)))
	assert.ElementsMatch(t, dir, out)
	assert.Equal(t, orig, dir, "输入不应被修改")
}

func TestBubbleSortKeepsNumberWithName(t *testing.T) {
	out, ok := BubbleSort(nil, []string{"123 Zoe", "555 Abe", "999 Mia"}, time.Hour)
	require.True(t, ok)
	assert.Equal(t, []string{"555 Abe", "999 Mia", "123 Zoe"}, out)
}

func TestBubbleSortZeroBudgetAborts(t *testing.T) {
	for _, dir := range [][]string{
		{"2 B", "1 A"},
		{"1 A", "3 C", "2 B"},
		shuffled(50, 2),
	} {
		out, ok := BubbleSort(nil, dir, 0)
		assert.False(t, ok)
		assert.Nil(t, out)
	}
}

func TestBubbleSortBudgetExceeded(t *testing.T) {
	clk := newStepClock(time.Millisecond)
	out, ok := BubbleSort(clk, reversed(100), 5*time.Millisecond)
	require.False(t, ok)
	require.Nil(t, out)
}

// 预算按整数毫秒比较：1.2ms 的实际耗时不超过 1ms 预算
func TestBubbleSortBudgetMillisecondPrecision(t *testing.T) {
	// reversed(4) 需 4 轮 × 3 次比较，每次采样前进 100µs
	out, ok := BubbleSort(newStepClock(100*time.Microsecond), reversed(4), time.Millisecond)
	require.True(t, ok)
	assert.True(t, sort.StringsAreSorted(Names(out)))

	// 放弃发生在整数毫秒耗时达到 2ms 时
	out, ok = BubbleSort(newStepClock(100*time.Microsecond), reversed(10), time.Millisecond)
	require.False(t, ok)
	assert.Nil(t, out)

	// 不足 1ms 的预算即 0 预算
	out, ok = BubbleSort(newStepClock(time.Nanosecond), []string{"2 B", "1 A"}, 999*time.Microsecond)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestBubbleSortTrivialInputs(t *testing.T) {
	out, ok := BubbleSort(nil, nil, 0)
	require.True(t, ok)
	assert.Empty(t, out)

	out, ok = BubbleSort(nil, []string{"1 A"}, 0)
	require.True(t, ok)
	assert.Equal(t, []string{"1 A"}, out)
}

func TestJumpSearch(t *testing.T) {
	for n := 1; n <= 40; n++ {
		dir := make([]string, n)
		for i := range dir {
			dir[i] = fmt.Sprintf("%d name%03d", 100+i, 2*i)
		}
		for i := 0; i < n; i++ {
			assert.True(t, JumpSearch(fmt.Sprintf("name%03d", 2*i), dir), "n=%d present %d", n, i)
			assert.False(t, JumpSearch(fmt.Sprintf("name%03d", 2*i+1), dir), "n=%d absent %d", n, i)
		}
		assert.False(t, JumpSearch("a", dir))
		assert.False(t, JumpSearch("zzz", dir))
	}
}

func TestJumpSearchDuplicatesAndEmpty(t *testing.T) {
	dir := []string{"1 A", "2 B", "3 B", "4 B", "5 C", "6 D"}
	assert.True(t, JumpSearch("B", dir))
	assert.True(t, JumpSearch("D", dir))
	assert.False(t, JumpSearch("", dir))
	assert.False(t, JumpSearch("A", nil))
}

func TestJump(t *testing.T) {
	clk := newStepClock(time.Millisecond)
	res := Jump(clk, []string{"Abe", "Nina", "Zoe"}, []string{"555 Abe", "999 Mia", "123 Zoe"})
	assert.Equal(t, 2, res.Matches)
	assert.Equal(t, time.Millisecond, res.Elapsed)
}

func TestQuickSort(t *testing.T) {
	inputs := map[string][]string{
		"random":  shuffled(500, 3),
		"sorted":  sortedDir(64),
		"reverse": reversed(64),
		"equal":   {"1 Same", "2 Same", "3 Same", "4 Same"},
		"dups":    {"3 B", "1 A", "2 B", "4 A", "5 C"},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			orig := append([]string(nil), in...)
			out := QuickSort(in)
			assert.True(t, sort.StringsAreSorted(Names(out)))
			assert.ElementsMatch(t, in, out)
			assert.Equal(t, orig, in)
		})
	}
}

func TestQuickSortBaseCases(t *testing.T) {
	assert.Empty(t, QuickSort(nil))
	assert.Equal(t, []string{"1 A"}, QuickSort([]string{"1 A"}))
}

func TestBinarySearch(t *testing.T) {
	names := []string{"Abe", "Mia", "Zoe"}
	assert.True(t, BinarySearch("Abe", names), "首元素")
	assert.True(t, BinarySearch("Zoe", names), "尾元素")
	assert.True(t, BinarySearch("Mia", names))
	assert.False(t, BinarySearch("Nina", names))
	assert.False(t, BinarySearch("Aaron", names))
	assert.False(t, BinarySearch("Zz", names))
	assert.False(t, BinarySearch("Abe", nil))
	assert.True(t, BinarySearch("x", []string{"x"}))
	assert.True(t, BinarySearch("B", []string{"A", "B", "B", "B", "C"}))
}

func TestBinaryAllPresent(t *testing.T) {
	names := Names(QuickSort(shuffled(300, 4)))
	for _, n := range names {
		require.True(t, BinarySearch(n, names), n)
	}
	res := Binary(nil, names, names)
	assert.Equal(t, len(names), res.Matches)
}

func TestHashLastWriteWins(t *testing.T) {
	dir := []string{"1 Alice", "2 Bob", "3 Alice"}
	table := BuildTable(dir)
	num, ok := table.Lookup("Alice")
	require.True(t, ok)
	assert.Equal(t, "3", num)
	assert.Equal(t, 2, table.Len())
	_, ok = table.Lookup("Carol")
	assert.False(t, ok)

	res := Hash(nil, []string{"Alice", "Bob", "Carol"}, dir)
	assert.Equal(t, 2, res.Matches)
}

func TestHashTiming(t *testing.T) {
	clk := newStepClock(2 * time.Millisecond)
	res := Hash(clk, []string{"Abe"}, []string{"1 Abe"})
	assert.Equal(t, 1, res.Matches)
	assert.Equal(t, 2*time.Millisecond, res.Build)
	assert.Equal(t, 2*time.Millisecond, res.Search)
	assert.Equal(t, 4*time.Millisecond, res.Elapsed)
}

func TestEndToEndScenario(t *testing.T) {
	dir := []string{"555 Abe", "123 Zoe", "999 Mia"}
	find := []string{"Zoe", "Nina"}

	assert.Equal(t, 1, Linear(nil, find, dir).Matches)

	sorted := QuickSort(dir)
	names := Names(sorted)
	assert.Equal(t, []string{"Abe", "Mia", "Zoe"}, names)
	assert.True(t, BinarySearch("Zoe", names))
	assert.False(t, BinarySearch("Nina", names))
	assert.Equal(t, 1, Binary(nil, find, names).Matches)

	assert.Equal(t, 1, Hash(nil, find, dir).Matches)

	bubbled, ok := BubbleSort(nil, dir, time.Hour)
	require.True(t, ok)
	assert.Equal(t, sorted, bubbled)
	assert.Equal(t, 1, Jump(nil, find, bubbled).Matches)
}

func sortedDir(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d Person %04d", 1000+i, i)
	}
	return out
}

func reversed(n int) []string {
	out := sortedDir(n)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func shuffled(n int, seed int64) []string {
	out := sortedDir(n)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
