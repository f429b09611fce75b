package bench

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/typo42/phone-book/internal/diag"
	"github.com/typo42/phone-book/internal/search"
	"github.com/typo42/phone-book/internal/timefmt"
	"github.com/typo42/phone-book/pkg/contract"
)

// - 单线程同步执行；计时仅用于报告与冒泡排序预算判定。
// - 线性检索总是先行，其耗时 × BudgetFactor 即冒泡排序预算。
// - 冒泡排序的结果决定 State，State 决定其后固定的阶段序列（见 plan）。
// - 阶段之间检查 ctx；阶段内部不可中断。

// Components 聚合运行所需的外部协作者。
type Components struct {
	Reader contract.LineReader
	Sink   contract.Sink
	// Clock 为空时使用系统时钟。
	Clock search.Clock
	// Metrics 可为空。
	Metrics *diag.Metrics
}

// Settings 运行期配置（最小必要）。
type Settings struct {
	Directory string
	Find      string
	// BudgetFactor < 1 时按 search.DefaultBudgetFactor。
	BudgetFactor int
}

type runner struct {
	ctx    context.Context
	comp   Components
	logger *diag.Logger

	find      []string
	directory []string

	linear time.Duration
	bubble time.Duration
	sorted []string

	rep Report
}

// Run 加载目录与查找名单后依次执行全部阶段，返回报告。
// 输入文件缺失/不可读为致命错误；冒泡排序超出预算不是错误。
func Run(ctx context.Context, comp Components, set Settings, logger *diag.Logger) (Report, error) {
	if err := sanity(comp, set); err != nil {
		return Report{}, fmt.Errorf("sanity: %w", err)
	}
	if comp.Clock == nil {
		comp.Clock = search.SystemClock{}
	}
	dir, err := comp.Reader.ReadLines(ctx, set.Directory)
	if err != nil {
		return Report{}, fmt.Errorf("load directory: %w", err)
	}
	find, err := comp.Reader.ReadLines(ctx, set.Find)
	if err != nil {
		return Report{}, fmt.Errorf("load find list: %w", err)
	}
	logger.Debug("bench", "inputs", map[string]string{
		"directory":        string(dir.ID),
		"directory_lines":  strconv.Itoa(dir.Len()),
		"find":             string(find.ID),
		"find_lines":       strconv.Itoa(find.Len()),
		"directory_digest": Fingerprint(dir.Lines),
	})

	r := &runner{
		ctx:       ctx,
		comp:      comp,
		logger:    logger,
		find:      find.Lines,
		directory: dir.Lines,
		rep: Report{
			Directory: Source{ID: dir.ID, Lines: dir.Len(), Digest: Fingerprint(dir.Lines)},
			Find:      Source{ID: find.ID, Lines: find.Len(), Digest: Fingerprint(find.Lines)},
		},
	}
	if err := r.linearSearch(); err != nil {
		return r.rep, err
	}
	state, err := r.bubbleSort(set.BudgetFactor)
	if err != nil {
		return r.rep, err
	}
	r.rep.State = state.String()
	for _, next := range plan(state) {
		if err := ctx.Err(); err != nil {
			return r.rep, err
		}
		if err := next(r); err != nil {
			return r.rep, err
		}
	}
	return r.rep, comp.Sink.Flush()
}

func sanity(comp Components, set Settings) error {
	if comp.Reader == nil || comp.Sink == nil {
		return fmt.Errorf("%w: reader and sink are required", contract.ErrInvalidInput)
	}
	if set.Directory == "" || set.Find == "" {
		return fmt.Errorf("%w: directory and find paths are required", contract.ErrInvalidInput)
	}
	if set.Directory == "-" && set.Find == "-" {
		return fmt.Errorf("%w: stdin can feed only one input", contract.ErrInvalidInput)
	}
	return nil
}

func (r *runner) emit(phase string, lines ...string) error {
	for _, text := range lines {
		if err := r.comp.Sink.Emit(contract.Line{Phase: phase, Text: text}); err != nil {
			return fmt.Errorf("emit %s: %w", phase, err)
		}
	}
	return nil
}

func (r *runner) found(matches int, totalMS int64) string {
	return fmt.Sprintf("Found %d / %d entries. Time taken: %s", matches, len(r.find), timefmt.Format(totalMS))
}

func (r *runner) record(p Phase) {
	p.Of = len(r.find)
	p.TotalMS = p.SortMS + p.SearchMS
	r.rep.Phases = append(r.rep.Phases, p)
	r.comp.Metrics.IncOp(p.Name, "success")
	r.comp.Metrics.ObserveDuration(p.Name, time.Duration(p.TotalMS)*time.Millisecond)
	r.logger.Finish(p.Name, "done", time.Duration(p.TotalMS)*time.Millisecond, int64(p.Matches), map[string]string{
		"sort_ms":   strconv.FormatInt(p.SortMS, 10),
		"search_ms": strconv.FormatInt(p.SearchMS, 10),
	})
}

func (r *runner) linearSearch() error {
	if err := r.emit(PhaseLinear, "Start searching (linear search)..."); err != nil {
		return err
	}
	r.logger.Start(PhaseLinear, "search")
	res := search.Linear(r.comp.Clock, r.find, r.directory)
	r.linear = res.Elapsed
	r.record(Phase{Name: PhaseLinear, Matches: res.Matches, SearchMS: res.Millis()})
	return r.emit(PhaseLinear, r.found(res.Matches, res.Millis()))
}

// bubbleSort 在预算内尝试冒泡排序并给出状态转移。
func (r *runner) bubbleSort(factor int) (State, error) {
	if err := r.emit(PhaseBubbleJump, "", "Start searching (bubble sort + jump search)..."); err != nil {
		return 0, err
	}
	budget := search.Budget(r.linear, factor)
	r.rep.BudgetMS = budget.Milliseconds()
	r.logger.StartWithKV("bubble", "sort", map[string]string{"budget_ms": strconv.FormatInt(budget.Milliseconds(), 10)})
	t0 := r.comp.Clock.Now()
	sorted, ok := search.BubbleSort(r.comp.Clock, r.directory, budget)
	r.bubble = r.comp.Clock.Now().Sub(t0)
	r.comp.Metrics.ObserveDuration("bubble", r.bubble)
	// 空结果同样视为"未排序"：跳跃查找要求目录非空
	if !ok || len(sorted) == 0 {
		msg := "budget exceeded, moved to linear search"
		if ok {
			msg = "empty directory, moved to linear search"
		}
		r.comp.Metrics.IncOp("bubble", "abort")
		r.logger.Abort("bubble", msg, r.bubble, nil)
		return SortAborted, nil
	}
	r.comp.Metrics.IncOp("bubble", "success")
	r.sorted = sorted
	return SortSucceeded, nil
}

func (r *runner) jump() error {
	if len(r.sorted) != len(r.directory) {
		return fmt.Errorf("%w: bubble sort lost entries", contract.ErrInvariantViolation)
	}
	res := search.Jump(r.comp.Clock, r.find, r.sorted)
	sortMS := r.bubble.Milliseconds()
	r.record(Phase{Name: PhaseBubbleJump, Matches: res.Matches, SortMS: sortMS, SearchMS: res.Millis()})
	return r.emit(PhaseBubbleJump,
		r.found(res.Matches, sortMS+res.Millis()),
		"Sorting time: "+timefmt.Format(sortMS),
		"Searching time: "+timefmt.Format(res.Millis()),
	)
}

// linearFallback 重跑线性检索（新计时），排序耗时沿用被终止的冒泡排序。
func (r *runner) linearFallback() error {
	r.logger.Start(PhaseLinearFallback, "search")
	res := search.Linear(r.comp.Clock, r.find, r.directory)
	sortMS := r.bubble.Milliseconds()
	r.record(Phase{Name: PhaseLinearFallback, Matches: res.Matches, SortMS: sortMS, SearchMS: res.Millis(), Stopped: true})
	return r.emit(PhaseBubbleJump,
		r.found(res.Matches, sortMS+res.Millis()),
		"Sorting time: "+timefmt.Format(sortMS)+" - STOPPED, moved to linear search",
		"Searching time: "+timefmt.Format(res.Millis()),
	)
}

func (r *runner) quickBinary() error {
	if err := r.emit(PhaseQuickBinary, "", "Start searching (quick sort + binary search)..."); err != nil {
		return err
	}
	r.logger.Start(PhaseQuickBinary, "sort+search")
	clk := r.comp.Clock
	t0 := clk.Now()
	sorted := search.QuickSort(r.directory)
	sortDur := clk.Now().Sub(t0)
	if len(sorted) != len(r.directory) {
		return fmt.Errorf("%w: quicksort lost entries", contract.ErrInvariantViolation)
	}
	// 二分查找在去掉号码的名字序列上进行
	res := search.Binary(clk, r.find, search.Names(sorted))
	sortMS := sortDur.Milliseconds()
	r.record(Phase{Name: PhaseQuickBinary, Matches: res.Matches, SortMS: sortMS, SearchMS: res.Millis()})
	return r.emit(PhaseQuickBinary,
		r.found(res.Matches, sortMS+res.Millis()),
		"Sorting time: "+timefmt.Format(sortMS),
		"Searching time: "+timefmt.Format(res.Millis()),
	)
}

func (r *runner) hash() error {
	if err := r.emit(PhaseHash, "", "Start searching (hash table)..."); err != nil {
		return err
	}
	r.logger.Start(PhaseHash, "build+search")
	res := search.Hash(r.comp.Clock, r.find, r.directory)
	buildMS, searchMS := res.Build.Milliseconds(), res.Search.Milliseconds()
	r.record(Phase{Name: PhaseHash, Matches: res.Matches, SortMS: buildMS, SearchMS: searchMS})
	return r.emit(PhaseHash,
		r.found(res.Matches, buildMS+searchMS),
		"Creating time: "+timefmt.Format(buildMS),
		"Searching time: "+timefmt.Format(searchMS),
	)
}
