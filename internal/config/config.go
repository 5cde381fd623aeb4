// Package config loads pmfzf settings from defaults, config.yaml, PMFZF_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"os"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/core"
	"github.com/atinylittleshell/pmfzf/internal/manifest"
	"github.com/atinylittleshell/pmfzf/internal/selector"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "PMFZF"

const (
	KeyCacheDir         = "cache_dir"
	KeyLogLevel         = "log_level"
	KeySourceFileLimit  = "source_file_limit"
	KeyFzfBinary        = "fzf.binary"
	KeyFzfHeight        = "fzf.height"
	KeyFzfPreviewWindow = "fzf.preview_window"
	KeyFzfAcceptKey     = "fzf.accept_key"
	KeyFzfExtraOpts     = "fzf.extra_opts"
)

type Config struct {
	CacheDir        string `mapstructure:"cache_dir"`
	LogLevel        string `mapstructure:"log_level"`
	SourceFileLimit int    `mapstructure:"source_file_limit"`
	Fzf             Fzf    `mapstructure:"fzf"`
}

type Fzf struct {
	Binary        string `mapstructure:"binary"`
	Height        string `mapstructure:"height"`
	PreviewWindow string `mapstructure:"preview_window"`
	AcceptKey     string `mapstructure:"accept_key"`

	// ExtraOpts is appended to the fzf command line after shell-word
	// splitting, e.g. `--border --color="bg+:-1"`.
	ExtraOpts string `mapstructure:"extra_opts"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	fzf := selector.DefaultFzfConfig()

	v.SetDefault(KeyCacheDir, core.CacheDir())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySourceFileLimit, manifest.DefaultSourceFileLimit)
	v.SetDefault(KeyFzfBinary, fzf.Binary)
	v.SetDefault(KeyFzfHeight, fzf.Height)
	v.SetDefault(KeyFzfPreviewWindow, fzf.PreviewWindow)
	v.SetDefault(KeyFzfAcceptKey, fzf.AcceptKey)
	v.SetDefault(KeyFzfExtraOpts, "")
}

// New returns a viper instance with defaults and environment binding set up.
// Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path into v and decodes the result. An empty
// path means the default location, which may be absent. An explicit path
// must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = core.ConfigFile()
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
		if explicit || !missing {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration with no file, environment or flags.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Fzf.ExtraArgs(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Fzf.Binary) == "" {
		return errors.New("fzf.binary must not be empty")
	}
	return nil
}

// Level returns the zap level named by LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	return level, nil
}

// ExtraArgs splits ExtraOpts the way a POSIX shell would.
func (f Fzf) ExtraArgs() ([]string, error) {
	args, err := shellquote.Split(f.ExtraOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid fzf.extra_opts %q", f.ExtraOpts)
	}
	return args, nil
}

// Selector converts the fzf settings into the selector configuration.
func (f Fzf) Selector() (selector.FzfConfig, error) {
	extra, err := f.ExtraArgs()
	if err != nil {
		return selector.FzfConfig{}, err
	}
	return selector.FzfConfig{
		Binary:        f.Binary,
		Height:        f.Height,
		PreviewWindow: f.PreviewWindow,
		AcceptKey:     f.AcceptKey,
		ExtraArgs:     extra,
	}, nil
}
