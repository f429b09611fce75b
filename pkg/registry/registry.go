package registry

import (
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/typo42/phone-book/pkg/contract"
	rfs "github.com/typo42/phone-book/plugins/reader/filesystem"
	sjsonl "github.com/typo42/phone-book/plugins/sink/jsonl"
	stext "github.com/typo42/phone-book/plugins/sink/text"
	wfs "github.com/typo42/phone-book/plugins/writer/filesystem"
)

var strict = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// strictUnmarshal: 拒绝未知字段；空输入保持零值（默认选项）。
func strictUnmarshal(raw jsoniter.RawMessage, v any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return strict.Unmarshal(raw, v)
}

// NewReader 工厂签名：接收原样 JSON Options。
type NewReader func(raw jsoniter.RawMessage) (contract.LineReader, error)

// NewWriter 工厂签名：outputDir 为 Options 未指定 output_dir 时的默认目录。
type NewWriter func(raw jsoniter.RawMessage, outputDir string) (contract.Writer, error)

// NewSink 工厂签名：w 为控制台输出目标。
type NewSink func(raw jsoniter.RawMessage, w io.Writer) (contract.Sink, error)

// Reader 工厂注册表（显式、零反射）。
var Reader = map[string]NewReader{
	// fs: 文件系统/STDIN 行源
	"fs": func(raw jsoniter.RawMessage) (contract.LineReader, error) {
		var opts rfs.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return rfs.New(&opts), nil
	},
}

// Writer 工厂注册表。
var Writer = map[string]NewWriter{
	// fs: 文件系统 Writer（默认原子替换）
	"fs": func(raw jsoniter.RawMessage, outputDir string) (contract.Writer, error) {
		var opts wfs.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		if strings.TrimSpace(opts.OutputDir) == "" {
			opts.OutputDir = outputDir
		}
		return wfs.New(&opts)
	},
}

// Sink 工厂注册表。
var Sink = map[string]NewSink{
	"text": func(raw jsoniter.RawMessage, w io.Writer) (contract.Sink, error) {
		var opts struct{}
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return stext.New(w), nil
	},
	"jsonl": func(raw jsoniter.RawMessage, w io.Writer) (contract.Sink, error) {
		var opts sjsonl.Options
		if err := strictUnmarshal(raw, &opts); err != nil {
			return nil, err
		}
		return sjsonl.New(w, &opts), nil
	},
}
