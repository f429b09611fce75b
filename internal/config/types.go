package config

import jsoniter "github.com/json-iterator/go"

// Config: 运行期只读配置（一次解析，运行期不变）。
// JSON 使用 snake_case；未知字段在解析期失败。
type Config struct {
	// Directory/Find: 电话簿目录与查找名单路径；"-" 表示 STDIN（至多一个）。
	Directory string `json:"directory"`
	Find      string `json:"find"`
	// BudgetFactor: 冒泡排序预算 = 线性检索耗时 × BudgetFactor。
	BudgetFactor int     `json:"budget_factor"`
	Logging      Logging `json:"logging"`
	Report       Report  `json:"report"`

	// 组件名选择（空则使用默认名）。
	Components Components `json:"components"`
	// 各组件 Options 子树，原样 JSON 传入工厂。
	Options Options `json:"options"`
}

// Logging: Dir 为轮转日志目录，"-" 表示只写 stderr。
type Logging struct {
	Level string `json:"level"`
	Dir   string `json:"dir"`
}

// Report: Sink 为控制台输出格式（text|jsonl）；Output 非空时额外写出 JSON 报告文件。
type Report struct {
	Sink   string `json:"sink"`
	Output string `json:"output"`
}

// Components: 组件名选择（注册表中的实现名）。
type Components struct {
	Reader string `json:"reader"`
	Writer string `json:"writer"`
}

// Options: 各组件的原样 JSON Options。
type Options struct {
	Reader jsoniter.RawMessage `json:"reader,omitempty"`
	Writer jsoniter.RawMessage `json:"writer,omitempty"`
	Sink   jsoniter.RawMessage `json:"sink,omitempty"`
}
