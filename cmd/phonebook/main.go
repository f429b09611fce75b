package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	flag "github.com/spf13/pflag"

	"github.com/typo42/phone-book/internal/bench"
	cfgpkg "github.com/typo42/phone-book/internal/config"
	"github.com/typo42/phone-book/internal/diag"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var benchRun = bench.Run

// 默认配置文件名（工作目录下，存在才读取）。
const defaultConfigFile = "phonebook.json"

// 单次运行：读取目录与查找名单，依次执行四组查找并输出耗时。
// 退出码：0 成功；1 运行期失败；3 配置/装配失败。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	start := time.Now()
	corrID := uniuri.NewLen(16)
	// 先写 stderr，合并配置后按最终 level/dir 重建
	logger := diag.NewWriterLogger(stderr, corrID, "info")
	// 在任何 ENV 读取前加载 .env（不覆盖已有 ENV）；解析失败只告警
	if err := loadDotEnv(".env"); err != nil {
		logger.Warn("cli", ".env skipped", map[string]string{"path": ".env", "err": err.Error()})
	}

	flags := flag.NewFlagSet("phonebook", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		flagConfig   string
		flagDir      string
		flagFind     string
		flagFactor   int
		flagSink     string
		flagReport   string
		flagLogLevel string
		flagInitDir  string
	)
	flags.StringVar(&flagConfig, "config", "", "配置文件路径（JSON）；缺省读取 ./phonebook.json（若存在）")
	flags.StringVarP(&flagDir, "directory", "d", "", "电话簿目录文件；\"-\" 表示 STDIN")
	flags.StringVarP(&flagFind, "find", "f", "", "查找名单文件；\"-\" 表示 STDIN")
	flags.IntVar(&flagFactor, "budget-factor", 0, "冒泡排序预算 = 线性检索耗时 × 该倍数")
	flags.StringVar(&flagSink, "sink", "", "控制台输出格式：text|jsonl")
	flags.StringVar(&flagReport, "report", "", "额外写出 JSON 报告的文件路径")
	flags.StringVar(&flagLogLevel, "log-level", "", "日志级别：debug|info|warn|error")
	flags.StringVar(&flagInitDir, "init-config", "", "在指定目录生成默认 phonebook.json 与 .env 模板（已存在则跳过）；不带值时为当前目录")
	if err := flags.Parse(normalizeInitArg(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 3
	}
	if flags.NArg() > 0 {
		fprintf(stderr, "不支持位置参数: %s\n", strings.Join(flags.Args(), " "))
		return 3
	}

	// --init-config: 生成模板并退出
	if initDir := strings.TrimSpace(flagInitDir); initDir != "" {
		if err := os.MkdirAll(initDir, 0o755); err != nil {
			fprintf(stderr, "生成默认配置失败: %v\n", err)
			logger.Error("cli", string(diag.Classify(err)), "first error", &start)
			return 3
		}
		if err := writeConfig(filepath.Join(initDir, defaultConfigFile), cfgpkg.DefaultTemplateConfig()); err != nil {
			fprintf(stderr, "生成默认配置失败: %v\n", err)
			logger.Error("cli", string(diag.Classify(err)), "first error", &start)
			return 3
		}
		if err := writeDotEnv(filepath.Join(initDir, ".env")); err != nil {
			fprintf(stderr, "提示：.env 生成失败（已跳过）：%v\n", err)
		}
		return 0
	}

	if flagConfig == "" {
		flagConfig = os.Getenv(cfgpkg.EnvPrefix + "CONFIG_FILE")
	}
	if flagConfig == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			flagConfig = defaultConfigFile
		}
	}

	cfg := cfgpkg.Defaults()
	if flagConfig != "" {
		base, err := cfgpkg.LoadJSON(flagConfig, nil)
		if err != nil {
			fprintf(stderr, "配置解析失败: %v\n", err)
			logger.Error("cli", string(diag.Classify(err)), "first error", &start)
			return 3
		}
		cfg = cfgpkg.Merge(cfg, base)
	}

	overEnv, err := cfgpkg.EnvOverlay(os.Environ())
	if err != nil {
		fprintf(stderr, "环境变量解析失败: %v\n", err)
		logger.Error("cli", string(diag.Classify(err)), "first error", &start)
		return 3
	}
	cfg = cfgpkg.Merge(cfg, overEnv)

	// CLI 覆盖（显式给出的旗标才覆盖；budget-factor 允许显式给出非法值交由 Validate 拒绝）
	overCLI := cfgpkg.Config{
		Directory: flagDir,
		Find:      flagFind,
		Logging:   cfgpkg.Logging{Level: flagLogLevel},
		Report:    cfgpkg.Report{Sink: flagSink, Output: flagReport},
	}
	cfg = cfgpkg.Merge(cfg, overCLI)
	if flags.Changed("budget-factor") {
		cfg.BudgetFactor = flagFactor
	}

	if err := cfgpkg.Validate(cfg); err != nil {
		fprintf(stderr, "配置校验失败: %v\n", err)
		_ = dumpConfig(stderr, cfg)
		logger.Error("cli", string(diag.Classify(err)), "first error", &start)
		return 3
	}

	logDir := strings.TrimSpace(cfg.Logging.Dir)
	if logDir == "-" {
		logDir = ""
	}
	logger = diag.NewLogger(corrID, cfg.Logging.Level, logDir)
	defer logger.Close()

	asm, err := cfgpkg.Assemble(cfg, stdout)
	if err != nil {
		fprintf(stderr, "装配失败: %v\n", err)
		logger.Error("cli", string(diag.Classify(err)), "first error", &start)
		return 3
	}
	metrics := diag.NewMetrics()
	asm.Components.Metrics = metrics

	logger.Debug("config", "effective", map[string]string{
		"directory":     asm.Settings.Directory,
		"find":          asm.Settings.Find,
		"budget_factor": strconv.Itoa(asm.Settings.BudgetFactor),
		"reader":        cfg.Components.Reader,
		"writer":        cfg.Components.Writer,
		"sink":          cfg.Report.Sink,
		"report":        cfg.Report.Output,
	})

	t := logger.Start("bench", "run")
	rep, err := benchRun(ctx, asm.Components, asm.Settings, logger)
	if err != nil {
		logger.Error("bench", string(diag.Classify(err)), "first error", &start)
		if !errors.Is(err, context.Canceled) {
			fprintf(stderr, "运行失败: %v\n", err)
		}
		return 1
	}
	if asm.ReportWriter != nil {
		if err := bench.WriteReport(ctx, asm.ReportWriter, asm.ReportID, rep); err != nil {
			logger.Error("report", string(diag.Classify(err)), "first error", &start)
			fprintf(stderr, "报告写出失败: %v\n", err)
			return 1
		}
	}
	for _, st := range metrics.Snapshot() {
		kv := map[string]string{"last_ms": strconv.FormatInt(st.Last.Milliseconds(), 10)}
		for result, n := range st.Results {
			kv[result] = strconv.FormatInt(n, 10)
		}
		logger.Debug("metrics", st.Comp, kv)
	}
	t.Finish("run", int64(len(rep.Phases)))
	return 0
}

// normalizeInitArg: --init-config 未带值时补默认值当前目录 "."。
//
//	--init-config            => --init-config .
//	--init-config --sink x   => --init-config . --sink x
//	--init-config out / --init-config=out 保持不变
func normalizeInitArg(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for i, a := range args {
		out = append(out, a)
		if a != "--init-config" {
			continue
		}
		if i == len(args)-1 || strings.HasPrefix(args[i+1], "-") {
			out = append(out, ".")
		}
	}
	return out
}

func fprintf(w io.Writer, format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

func dumpConfig(w io.Writer, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	_, _ = w.Write(append([]byte("有效配置:\n"), b...))
	_, _ = w.Write([]byte("\n"))
	return nil
}

func writeConfig(path string, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(b, '\n'))
		return err
	}
	// 不覆盖已存在文件
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = f.Write(append(b, '\n'))
	return err
}

// loadDotEnv 加载 .env 并注入进程环境；文件不存在时忽略，已存在的环境变量不被覆盖。
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// writeDotEnv 生成 .env 模板（已存在则跳过）。
func writeDotEnv(path string) error {
	var b strings.Builder
	b.WriteString("# phonebook .env 模板（由 --init-config 生成）\n")
	b.WriteString("# 优先级：CLI > ENV(.env) > JSON\n\n")
	b.WriteString("PHONEBOOK_CONFIG_FILE=\n\n")
	for _, k := range []string{
		"DIRECTORY", "FIND", "BUDGET_FACTOR",
		"LOG_LEVEL", "LOG_DIR",
		"REPORT_SINK", "REPORT_OUTPUT",
		"COMPONENTS_READER", "COMPONENTS_WRITER",
		"OPTIONS_READER_JSON", "OPTIONS_WRITER_JSON", "OPTIONS_SINK_JSON",
	} {
		b.WriteString(cfgpkg.EnvPrefix + k + "=\n")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	_, err = f.WriteString(b.String())
	return err
}
