package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int64("threshold", DefaultThreshold, "")
	flags.String("out-dir", DefaultOutDir, "")
	flags.String("mode", DefaultMode, "")
	flags.Bool("pretty", false, "")
	flags.String("output", "", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultThreshold, cfg.Threshold)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.False(t, cfg.Pretty)
}

func TestLoadPrecedence(t *testing.T) {
	cfgFile := writeFile(t, "twbstruct.yaml", "threshold: 1000\nout_dir: from-file\nmode: light\nworkers: 2\n")
	t.Setenv("TWBSTRUCT_OUT_DIR", "from-env")
	t.Setenv("TWBSTRUCT_WORKERS", "6")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--out-dir", "from-flag", "--output", "ignored.json"}))

	cfg, err := Load(cfgFile, "", flags)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cfg.Threshold, "file overrides default")
	assert.Equal(t, "light", cfg.Mode, "unchanged flag keeps file value")
	assert.Equal(t, 6, cfg.Workers, "env overrides file")
	assert.Equal(t, "from-flag", cfg.OutDir, "flag overrides env")
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "TWBSTRUCT_MAX_DEPTH=3\n")
	t.Cleanup(func() { os.Unsetenv("TWBSTRUCT_MAX_DEPTH") })

	cfg, err := Load("", envFile, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"), nil)
	assert.NoError(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Threshold: 10, MaxDepth: 1, Workers: 1, Mode: "verbose", Format: "yaml"}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }, "threshold"},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, "max_depth"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"bad mode", func(c *Config) { c.Mode = "full" }, "invalid mode"},
		{"bad format", func(c *Config) { c.Format = "toml" }, "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadRejectsInvalidFlag(t *testing.T) {
	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--threshold", "-1"}))

	_, err := Load("", "", flags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}
