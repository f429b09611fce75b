package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typo42/phone-book/pkg/contract"
)

// 解析完整 JSON 配置
func TestLoadJSON(t *testing.T) {
	cfg, err := LoadJSON("../../testdata/config/basic.json", nil)
	require.NoError(t, err)
	assert.Equal(t, "testdata/directory.txt", cfg.Directory)
	assert.Equal(t, 5, cfg.BudgetFactor)
	assert.Equal(t, "-", cfg.Logging.Dir)
	assert.Equal(t, "jsonl", cfg.Report.Sink)
	assert.JSONEq(t, `{"include_blank":true}`, string(cfg.Options.Sink))
	require.NoError(t, Validate(cfg))
}

func TestLoadJSONUnknown(t *testing.T) {
	_, err := LoadJSON("", []byte(`{"unknown":1}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrInvalidInput))
}

func TestLoadJSONNoSource(t *testing.T) {
	_, err := LoadJSON("", nil)
	assert.Error(t, err)
}

func TestDefaultsValid(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "directory.txt", d.Directory)
	assert.Equal(t, "find.txt", d.Find)
	assert.Equal(t, 3, d.BudgetFactor)
	require.NoError(t, Validate(d))
}

func TestEnvOverlay(t *testing.T) {
	env := []string{
		"PHONEBOOK_DIRECTORY=dir.txt",
		"PHONEBOOK_BUDGET_FACTOR=7",
		"PHONEBOOK_REPORT_SINK=jsonl",
		"PHONEBOOK_OPTIONS_SINK_JSON={\"include_blank\":true}",
		"PHONEBOOK_UNKNOWN=x",
		"PHONEBOOK_FIND=",
		"PATH=/bin",
	}
	over, err := EnvOverlay(env)
	require.NoError(t, err)
	assert.Equal(t, "dir.txt", over.Directory)
	assert.Equal(t, 7, over.BudgetFactor)
	assert.Equal(t, "jsonl", over.Report.Sink)
	assert.Empty(t, over.Find)
	assert.Equal(t, `{"include_blank":true}`, string(over.Options.Sink))
}

func TestEnvOverlayBadFactor(t *testing.T) {
	_, err := EnvOverlay([]string{"PHONEBOOK_BUDGET_FACTOR=abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrInvalidInput))
}

// 优先级：后者覆盖前者，空值不覆盖
func TestMergePriority(t *testing.T) {
	base := Defaults()
	file := Config{Directory: "file.txt", BudgetFactor: 4}
	env := Config{Directory: "env.txt", Logging: Logging{Level: "debug"}}
	cli := Config{Find: "cli.txt"}

	cfg := Merge(Merge(Merge(base, file), env), cli)
	assert.Equal(t, "env.txt", cfg.Directory)
	assert.Equal(t, "cli.txt", cfg.Find)
	assert.Equal(t, 4, cfg.BudgetFactor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.Equal(t, "text", cfg.Report.Sink)
}

func TestMergeClonesOptions(t *testing.T) {
	over := Config{Options: Options{Reader: []byte(`{"buf_size":1}`)}}
	cfg := Merge(Defaults(), over)
	over.Options.Reader[0] = 'x'
	assert.Equal(t, `{"buf_size":1}`, string(cfg.Options.Reader))
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty directory": func(c *Config) { c.Directory = " " },
		"empty find":      func(c *Config) { c.Find = "" },
		"double stdin":    func(c *Config) { c.Directory, c.Find = "-", "-" },
		"zero factor":     func(c *Config) { c.BudgetFactor = 0 },
		"bad level":       func(c *Config) { c.Logging.Level = "loud" },
		"bad reader":      func(c *Config) { c.Components.Reader = "s3" },
		"bad writer":      func(c *Config) { c.Components.Writer = "s3" },
		"bad sink":        func(c *Config) { c.Report.Sink = "xml" },
		"dir as report":   func(c *Config) { c.Report.Output = "out/" },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			mut(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, contract.ErrInvalidInput))
		})
	}
}

func TestAssemble(t *testing.T) {
	cfg := Defaults()
	cfg.Directory = " a.txt "
	var out bytes.Buffer
	a, err := Assemble(cfg, &out)
	require.NoError(t, err)
	assert.NotNil(t, a.Components.Reader)
	assert.NotNil(t, a.Components.Sink)
	assert.Equal(t, "a.txt", a.Settings.Directory)
	assert.Equal(t, 3, a.Settings.BudgetFactor)
	assert.Nil(t, a.ReportWriter)
}

func TestAssembleReport(t *testing.T) {
	cfg := Defaults()
	cfg.Report.Output = t.TempDir() + "/report.json"
	a, err := Assemble(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, a.ReportWriter)
	assert.Equal(t, contract.ArtifactID("report.json"), a.ReportID)
}

func TestAssembleBadOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Options.Reader = []byte(`{"nope":1}`)
	_, err := Assemble(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDefaultTemplateConfig(t *testing.T) {
	tpl := DefaultTemplateConfig()
	require.NoError(t, Validate(tpl))
	_, err := Assemble(tpl, &bytes.Buffer{})
	require.NoError(t, err)
	b, err := strictJSON.MarshalIndent(tpl, "", "  ")
	require.NoError(t, err)
	back, err := LoadJSON("", b)
	require.NoError(t, err)
	assert.Equal(t, tpl.Directory, back.Directory)
	assert.Equal(t, tpl.BudgetFactor, back.BudgetFactor)
}
