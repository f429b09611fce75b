package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/typo42/phone-book/internal/search"
	"github.com/typo42/phone-book/pkg/contract"
)

// EnvPrefix 为环境变量覆盖前缀。
const EnvPrefix = "PHONEBOOK_"

var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// Defaults 返回带安全默认值的 Config。
// 输入路径默认即工作目录下的固定文件名。
func Defaults() Config {
	return Config{
		Directory:    "directory.txt",
		Find:         "find.txt",
		BudgetFactor: search.DefaultBudgetFactor,
		Logging:      Logging{Level: "info", Dir: "logs"},
		Report:       Report{Sink: "text"},
		Components:   Components{Reader: "fs", Writer: "fs"},
	}
}

// LoadJSON 从文件路径或原始 JSON 解析 Config（严格拒绝未知字段）。
func LoadJSON(path string, raw []byte) (Config, error) {
	var cfg Config
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, errors.New("no config source provided")
	}
	if err := strictJSON.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
	}
	return cfg, nil
}

// Merge 按优先级合并（后者覆盖前者）；零值/空串视为未覆盖，不做深度合并。
func Merge(base, over Config) Config {
	out := base
	if s := strings.TrimSpace(over.Directory); s != "" {
		out.Directory = s
	}
	if s := strings.TrimSpace(over.Find); s != "" {
		out.Find = s
	}
	if over.BudgetFactor != 0 {
		out.BudgetFactor = over.BudgetFactor
	}
	if s := strings.TrimSpace(over.Logging.Level); s != "" {
		out.Logging.Level = s
	}
	if s := strings.TrimSpace(over.Logging.Dir); s != "" {
		out.Logging.Dir = s
	}
	if s := strings.TrimSpace(over.Report.Sink); s != "" {
		out.Report.Sink = s
	}
	if s := strings.TrimSpace(over.Report.Output); s != "" {
		out.Report.Output = s
	}
	if over.Components.Reader != "" {
		out.Components.Reader = over.Components.Reader
	}
	if over.Components.Writer != "" {
		out.Components.Writer = over.Components.Writer
	}
	// Options（完整替换对应键）
	if len(over.Options.Reader) > 0 {
		out.Options.Reader = cloneRaw(over.Options.Reader)
	}
	if len(over.Options.Writer) > 0 {
		out.Options.Writer = cloneRaw(over.Options.Writer)
	}
	if len(over.Options.Sink) > 0 {
		out.Options.Sink = cloneRaw(over.Options.Sink)
	}
	return out
}

// EnvOverlay 从环境变量构建覆盖；仅识别下列键，其余 PHONEBOOK_ 键忽略：
// DIRECTORY, FIND, BUDGET_FACTOR, LOG_LEVEL, LOG_DIR, REPORT_SINK, REPORT_OUTPUT,
// COMPONENTS_READER, COMPONENTS_WRITER, OPTIONS_{READER,WRITER,SINK}_JSON。
func EnvOverlay(environ []string) (Config, error) {
	var over Config
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq <= len(EnvPrefix) {
			continue
		}
		key, val := kv[len(EnvPrefix):eq], strings.TrimSpace(kv[eq+1:])
		if val == "" {
			continue
		}
		switch key {
		case "DIRECTORY":
			over.Directory = val
		case "FIND":
			over.Find = val
		case "BUDGET_FACTOR":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Config{}, fmt.Errorf("%w: %sBUDGET_FACTOR=%q", contract.ErrInvalidInput, EnvPrefix, val)
			}
			over.BudgetFactor = n
		case "LOG_LEVEL":
			over.Logging.Level = val
		case "LOG_DIR":
			over.Logging.Dir = val
		case "REPORT_SINK":
			over.Report.Sink = val
		case "REPORT_OUTPUT":
			over.Report.Output = val
		case "COMPONENTS_READER":
			over.Components.Reader = val
		case "COMPONENTS_WRITER":
			over.Components.Writer = val
		case "OPTIONS_READER_JSON":
			over.Options.Reader = jsoniter.RawMessage(val)
		case "OPTIONS_WRITER_JSON":
			over.Options.Writer = jsoniter.RawMessage(val)
		case "OPTIONS_SINK_JSON":
			over.Options.Sink = jsoniter.RawMessage(val)
		}
	}
	return over, nil
}

func cloneRaw(in jsoniter.RawMessage) jsoniter.RawMessage {
	if len(in) == 0 {
		return nil
	}
	out := make(jsoniter.RawMessage, len(in))
	copy(out, in)
	return out
}
