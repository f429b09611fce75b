package bench

import (
	"bytes"
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/typo42/phone-book/pkg/contract"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source 描述一个输入文件。
type Source struct {
	ID     contract.FileID `json:"id"`
	Lines  int             `json:"lines"`
	Digest string          `json:"digest"`
}

// Phase 为单个阶段的结果。耗时均为截断后的整数毫秒，TotalMS = SortMS + SearchMS。
// 哈希阶段的 SortMS 为建表耗时。
type Phase struct {
	Name     string `json:"name"`
	Matches  int    `json:"matches"`
	Of       int    `json:"of"`
	SortMS   int64  `json:"sort_ms"`
	SearchMS int64  `json:"search_ms"`
	TotalMS  int64  `json:"total_ms"`
	// Stopped: 排序被预算终止（仅 linear_fallback）。
	Stopped bool `json:"stopped,omitempty"`
}

// Report 汇总一次完整运行。
type Report struct {
	Directory Source  `json:"directory"`
	Find      Source  `json:"find"`
	BudgetMS  int64   `json:"budget_ms"`
	State     string  `json:"state"`
	Phases    []Phase `json:"phases"`
}

// Phase 按名字查找阶段结果。
func (r Report) Phase(name string) (Phase, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// WriteReport 以缩进 JSON 经 Writer 持久化报告。
func WriteReport(ctx context.Context, w contract.Writer, id contract.ArtifactID, rep Report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := w.Write(ctx, id, bytes.NewReader(append(b, '\n'))); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
