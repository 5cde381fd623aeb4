package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atinylittleshell/pmfzf/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// isolate points every default path into a temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	core.ResetPaths()
	t.Cleanup(core.ResetPaths)
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	config, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, core.CacheDir(), config.CacheDir)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, 20, config.SourceFileLimit)
	assert.Equal(t, Fzf{
		Binary:        "fzf",
		Height:        "40%",
		PreviewWindow: "down:3:wrap",
		AcceptKey:     "tab",
	}, config.Fzf)
	assert.Equal(t, Default(), config)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
cache_dir: /tmp/pmfzf-cache
log_level: debug
source_file_limit: 5
fzf:
  height: 60%
  extra_opts: --border --color="bg+:-1"
`)

	config, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pmfzf-cache", config.CacheDir)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 5, config.SourceFileLimit)
	assert.Equal(t, "60%", config.Fzf.Height)
	assert.Equal(t, "fzf", config.Fzf.Binary, "unset keys keep their default")

	args, err := config.Fzf.ExtraArgs()
	require.NoError(t, err)
	assert.Equal(t, []string{"--border", "--color=bg+:-1"}, args)
}

func TestLoadDefaultLocation(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(core.ConfigFile()), 0755))
	require.NoError(t, os.WriteFile(core.ConfigFile(), []byte("fzf:\n  accept_key: ctrl-space\n"), 0644))

	config, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "ctrl-space", config.Fzf.AcceptKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "fzf:\n  binary: /opt/fzf\nlog_level: warn\n")
	t.Setenv("PMFZF_FZF_BINARY", "/usr/local/bin/fzf")
	t.Setenv("PMFZF_SOURCE_FILE_LIMIT", "7")

	config, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/fzf", config.Fzf.Binary)
	assert.Equal(t, 7, config.SourceFileLimit)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		path     string
		contains string
	}{
		{
			name:     "explicit path must exist",
			path:     filepath.Join(t.TempDir(), "missing.yaml"),
			contains: "read config",
		},
		{
			name:     "malformed yaml",
			path:     writeConfig(t, "fzf: [unterminated\n"),
			contains: "read config",
		},
		{
			name:     "unknown log level",
			path:     writeConfig(t, "log_level: loud\n"),
			contains: "invalid log_level",
		},
		{
			name:     "unbalanced extra opts",
			path:     writeConfig(t, "fzf:\n  extra_opts: --prompt='oops\n"),
			contains: "invalid fzf.extra_opts",
		},
		{
			name:     "empty binary",
			path:     writeConfig(t, "fzf:\n  binary: \"\"\n"),
			contains: "fzf.binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(), tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLevel(t *testing.T) {
	config := &Config{LogLevel: "debug"}
	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestSelector(t *testing.T) {
	f := Fzf{Binary: "sk", Height: "100%", PreviewWindow: "right", AcceptKey: "enter", ExtraOpts: "--cycle"}

	sel, err := f.Selector()
	require.NoError(t, err)
	assert.Equal(t, "sk", sel.Binary)
	assert.Equal(t, "100%", sel.Height)
	assert.Equal(t, "right", sel.PreviewWindow)
	assert.Equal(t, "enter", sel.AcceptKey)
	assert.Equal(t, []string{"--cycle"}, sel.ExtraArgs)
}
