package bench

// State 为冒泡排序结束后的运行状态；一旦确定，剩余阶段序列即固定，不再尝试排序。
type State int

const (
	// SortSucceeded: 冒泡排序在预算内完成 → 跳跃查找 → 快排+二分 → 哈希。
	SortSucceeded State = iota + 1
	// SortAborted: 冒泡排序超出预算 → 重跑线性检索 → 快排+二分 → 哈希。
	SortAborted
)

func (s State) String() string {
	switch s {
	case SortSucceeded:
		return "sort_succeeded"
	case SortAborted:
		return "sort_aborted"
	default:
		return "unknown"
	}
}

// 阶段名（日志 comp、报告与 Sink 的 Phase 字段共用）。
const (
	PhaseLinear         = "linear"
	PhaseBubbleJump     = "bubble_jump"
	PhaseLinearFallback = "linear_fallback"
	PhaseQuickBinary    = "quick_binary"
	PhaseHash           = "hash"
)

type phaseFunc func(r *runner) error

// plan 返回各状态之后的固定阶段序列。
func plan(s State) []phaseFunc {
	switch s {
	case SortSucceeded:
		return []phaseFunc{(*runner).jump, (*runner).quickBinary, (*runner).hash}
	case SortAborted:
		return []phaseFunc{(*runner).linearFallback, (*runner).quickBinary, (*runner).hash}
	default:
		return nil
	}
}
