package diag

import (
	"sort"
	"sync"
	"time"
)

// Metrics: 进程内阶段指标（无导出端点）。
// - op_total{comp,result}
// - op_duration_ms{comp}（最近一次）
type Metrics struct {
	mu   sync.Mutex
	ops  map[string]map[string]int64
	last map[string]time.Duration
}

// Stat 是单个组件的快照。
type Stat struct {
	Comp    string
	Results map[string]int64
	Last    time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{ops: map[string]map[string]int64{}, last: map[string]time.Duration{}}
}

// IncOp 累加操作计数（result=success|abort|error）。
func (m *Metrics) IncOp(comp, result string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byResult := m.ops[comp]
	if byResult == nil {
		byResult = map[string]int64{}
		m.ops[comp] = byResult
	}
	byResult[result]++
}

// ObserveDuration 记录阶段耗时。
func (m *Metrics) ObserveDuration(comp string, d time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.last[comp] = d
	m.mu.Unlock()
}

// Snapshot 按组件名排序返回副本。
func (m *Metrics) Snapshot() []Stat {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]struct{}{}
	for c := range m.ops {
		seen[c] = struct{}{}
	}
	for c := range m.last {
		seen[c] = struct{}{}
	}
	out := make([]Stat, 0, len(seen))
	for c := range seen {
		res := make(map[string]int64, len(m.ops[c]))
		for k, v := range m.ops[c] {
			res[k] = v
		}
		out = append(out, Stat{Comp: c, Results: res, Last: m.last[c]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Comp < out[j].Comp })
	return out
}
