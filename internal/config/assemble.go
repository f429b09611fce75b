package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/typo42/phone-book/internal/bench"
	"github.com/typo42/phone-book/pkg/contract"
	"github.com/typo42/phone-book/pkg/registry"
)

// Validate 对最小必要边界做静态校验。
func Validate(cfg Config) error {
	dir, find := strings.TrimSpace(cfg.Directory), strings.TrimSpace(cfg.Find)
	if dir == "" || find == "" {
		return fmt.Errorf("%w: config: directory and find must be set", contract.ErrInvalidInput)
	}
	if dir == "-" && find == "-" {
		return fmt.Errorf("%w: config: '-' (stdin) can feed only one input", contract.ErrInvalidInput)
	}
	if cfg.BudgetFactor < 1 {
		return fmt.Errorf("%w: config: budget_factor must be >= 1", contract.ErrInvalidInput)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: config: unknown log level %q", contract.ErrInvalidInput, cfg.Logging.Level)
	}
	d := Defaults()
	if name := effName(cfg.Components.Reader, d.Components.Reader); registry.Reader[name] == nil {
		return fmt.Errorf("%w: config: reader %q not registered", contract.ErrInvalidInput, name)
	}
	if name := effName(cfg.Components.Writer, d.Components.Writer); registry.Writer[name] == nil {
		return fmt.Errorf("%w: config: writer %q not registered", contract.ErrInvalidInput, name)
	}
	if name := effName(cfg.Report.Sink, d.Report.Sink); registry.Sink[name] == nil {
		return fmt.Errorf("%w: config: sink %q not registered", contract.ErrInvalidInput, name)
	}
	if out := strings.TrimSpace(cfg.Report.Output); out != "" {
		if base := filepath.Base(out); base == "." || base == ".." || base == string(filepath.Separator) || strings.HasSuffix(out, "/") {
			return fmt.Errorf("%w: config: report output %q is not a file path", contract.ErrInvalidInput, out)
		}
	}
	return nil
}

// Assembly 为装配结果。ReportWriter 为空表示不写报告文件。
type Assembly struct {
	Components   bench.Components
	Settings     bench.Settings
	ReportWriter contract.Writer
	ReportID     contract.ArtifactID
}

// Assemble 构造组件实例；严格 Options 解析在 registry（工厂）层进行。
// stdout 为控制台 Sink 的输出目标。
func Assemble(cfg Config, stdout io.Writer) (Assembly, error) {
	if err := Validate(cfg); err != nil {
		return Assembly{}, err
	}
	d := Defaults()
	r, err := registry.Reader[effName(cfg.Components.Reader, d.Components.Reader)](cfg.Options.Reader)
	if err != nil {
		return Assembly{}, fmt.Errorf("reader options: %w", err)
	}
	sink, err := registry.Sink[effName(cfg.Report.Sink, d.Report.Sink)](cfg.Options.Sink, stdout)
	if err != nil {
		return Assembly{}, fmt.Errorf("sink options: %w", err)
	}
	a := Assembly{
		Components: bench.Components{Reader: r, Sink: sink},
		Settings: bench.Settings{
			Directory:    strings.TrimSpace(cfg.Directory),
			Find:         strings.TrimSpace(cfg.Find),
			BudgetFactor: cfg.BudgetFactor,
		},
	}
	if out := strings.TrimSpace(cfg.Report.Output); out != "" {
		w, err := registry.Writer[effName(cfg.Components.Writer, d.Components.Writer)](cfg.Options.Writer, filepath.Dir(out))
		if err != nil {
			return Assembly{}, fmt.Errorf("writer options: %w", err)
		}
		a.ReportWriter = w
		a.ReportID = contract.ArtifactID(filepath.Base(out))
	}
	return a, nil
}

func effName(got, def string) string {
	if strings.TrimSpace(got) == "" {
		return def
	}
	return strings.TrimSpace(got)
}
