package config

import jsoniter "github.com/json-iterator/go"

// DefaultTemplateConfig 返回 --init-config 写出的模板：默认值全部显式列出，
// 组件 Options 给出全部可用键与中性默认值。
func DefaultTemplateConfig() Config {
	cfg := Defaults()
	cfg.Options = Options{
		Reader: jsoniter.RawMessage(`{"buf_size":65536,"max_line_bytes":1048576}`),
		Sink:   jsoniter.RawMessage(`{}`),
	}
	return cfg
}
