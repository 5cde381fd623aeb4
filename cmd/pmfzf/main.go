package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atinylittleshell/pmfzf/internal/cache"
	"github.com/atinylittleshell/pmfzf/internal/completion"
	"github.com/atinylittleshell/pmfzf/internal/completion/catalog"
	"github.com/atinylittleshell/pmfzf/internal/config"
	"github.com/atinylittleshell/pmfzf/internal/core"
	"github.com/atinylittleshell/pmfzf/internal/manifest"
	"github.com/atinylittleshell/pmfzf/internal/selector"
	"github.com/atinylittleshell/pmfzf/internal/shell"
	"github.com/atinylittleshell/pmfzf/internal/styles"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var (
	// errReported marks a failure whose diagnostic was already printed.
	errReported = errors.New("reported")

	// errDismissed ends a completion whose selector was closed without a
	// choice. It exits silently with shell.DismissedStatus.
	errDismissed = errors.New("selection dismissed")
)

// app carries the state shared by every subcommand. The function fields are
// the seams tests replace.
type app struct {
	viper      *viper.Viper
	config     *config.Config
	logger     *zap.Logger
	configPath string

	workdir      func() (string, error)
	executable   func() (string, error)
	lookupBinary func(binary string) (string, error)
	checkBinary  func(ctx context.Context, binary string) (selector.BinaryInfo, error)
	newSelector  func(config selector.FzfConfig, logger *zap.Logger) selector.Selector
	isTerminal   func() bool
}

func newApp() *app {
	return &app{
		viper:        config.New(),
		logger:       zap.NewNop(),
		workdir:      os.Getwd,
		executable:   os.Executable,
		lookupBinary: selector.LookupBinary,
		checkBinary:  selector.CheckBinary,
		newSelector: func(config selector.FzfConfig, logger *zap.Logger) selector.Selector {
			return selector.NewFzf(config, selector.ExecRunner, logger)
		},
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	a := newApp()
	err := newRootCmd(a).ExecuteContext(ctx)
	_ = a.logger.Sync()
	stop()

	if err != nil {
		if errors.Is(err, errDismissed) {
			os.Exit(shell.DismissedStatus)
		}
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, styles.ERROR("pmfzf: "+err.Error()))
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pmfzf",
		Short: "Fuzzy completion for yarn, bun, npm and deno",
		Long: `pmfzf completes subcommands, package.json scripts, deno.json tasks and
source files for yarn, bun, npm and deno through fzf.

Enable it in your shell with:
  eval "$(pmfzf init zsh)"    # or bash`,
		Version:       BUILD_VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Shell integration is `init`.
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+core.ConfigFile()+")")
	flags.String("cache-dir", "", "directory holding the per-tool completion caches")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	_ = a.viper.BindPFlag(config.KeyCacheDir, flags.Lookup("cache-dir"))
	_ = a.viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newCompleteCmd(a),
		newInitCmd(a),
		newListCmd(a),
		newCacheCmd(a),
	)
	return root
}

// setup loads the configuration and opens the log. A broken configuration
// must not break completion, so `complete` falls back to the defaults.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.viper, a.configPath)
	if err != nil {
		if cmd.Name() != completeCmdName {
			return err
		}
		cfg = config.Default()
	}
	a.config = cfg

	a.logger = initializeLogger(cfg)
	if err != nil {
		a.logger.Warn("ignoring invalid configuration", zap.Error(err))
	}
	a.logger.Debug("-------- new pmfzf invocation --------", zap.Strings("args", os.Args))
	return nil
}

// initializeLogger writes to the log file only; stdout carries completion
// results and stderr belongs to fzf. Failing to open the file disables
// logging.
func initializeLogger(cfg *config.Config) *zap.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = zap.InfoLevel
	}
	if BUILD_VERSION == "dev" {
		level = zap.DebugLevel
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	loggerConfig.ErrorOutputPaths = []string{
		core.LogFile(),
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (a *app) newCache() *cache.Cache {
	return cache.New(a.config.CacheDir, catalog.Lookup, a.logger)
}

func (a *app) newAssembler() *completion.Assembler {
	return completion.NewAssembler(
		a.newCache(),
		manifest.NewReader(a.logger),
		a.config.SourceFileLimit,
		a.logger,
	)
}

// fzfPath returns the selector settings with the binary resolved on PATH. It
// runs on every completion, so the version is left to checkedFzf.
func (a *app) fzfPath() (selector.FzfConfig, error) {
	fzf, err := a.config.Fzf.Selector()
	if err != nil {
		return selector.FzfConfig{}, err
	}

	path, err := a.lookupBinary(fzf.Binary)
	if err != nil {
		return selector.FzfConfig{}, err
	}
	fzf.Binary = path
	return fzf, nil
}

// checkedFzf returns the selector settings after verifying the binary and its
// version. A missing or outdated fzf is fatal.
func (a *app) checkedFzf(ctx context.Context) (selector.FzfConfig, error) {
	fzf, err := a.config.Fzf.Selector()
	if err != nil {
		return selector.FzfConfig{}, err
	}

	info, err := a.checkBinary(ctx, fzf.Binary)
	if err != nil {
		return selector.FzfConfig{}, err
	}
	if info.Version == nil {
		a.logger.Info("unrecognized fzf version, assuming it is recent", zap.String("version", info.Raw))
	}
	fzf.Binary = info.Path
	return fzf, nil
}
