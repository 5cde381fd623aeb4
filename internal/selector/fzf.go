package selector

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrAborted is returned by a Runner when fzf exited without a selection
// (no match or the user cancelled).
var ErrAborted = errors.New("selection aborted")

// Runner executes the finder binary with args, feeding stdin and collecting
// stdout.
type Runner func(ctx context.Context, binary string, args []string, stdin io.Reader, stdout io.Writer) error

// FzfConfig holds the finder settings that do not change per selection.
type FzfConfig struct {
	Binary        string
	Height        string
	PreviewWindow string
	AcceptKey     string

	// ExtraArgs are appended after the built-in flags so they can override
	// them.
	ExtraArgs []string
}

// DefaultFzfConfig returns the settings used when nothing is configured.
func DefaultFzfConfig() FzfConfig {
	return FzfConfig{
		Binary:        "fzf",
		Height:        "40%",
		PreviewWindow: "down:3:wrap",
		AcceptKey:     "tab",
	}
}

// Fzf runs the external fzf process.
type Fzf struct {
	config FzfConfig
	run    Runner
	logger *zap.Logger
}

// NewFzf creates a selector backed by the fzf binary. A nil runner executes
// the real process.
func NewFzf(config FzfConfig, run Runner, logger *zap.Logger) *Fzf {
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fzf{
		config: config,
		run:    run,
		logger: logger,
	}
}

// Args returns the command line flags used for a selection.
func (f *Fzf) Args(opts Options) []string {
	args := []string{
		"--delimiter=\t",
		"--with-nth=1",
		"--preview=echo {2..}",
		"--preview-window=" + f.config.PreviewWindow,
		"--height=" + f.config.Height,
		"--layout=reverse",
		"--no-multi",
		"--prompt=" + opts.Prompt,
		"--bind=" + f.config.AcceptKey + ":accept",
	}
	if opts.Query != "" {
		args = append(args, "--query="+opts.Query)
	}
	return append(args, f.config.ExtraArgs...)
}

func (f *Fzf) Select(ctx context.Context, candidates []pm.Candidate, opts Options) (string, bool, error) {
	if len(candidates) == 0 {
		return "", false, nil
	}

	input := strings.Join(Lines(candidates), "\n") + "\n"
	args := f.Args(opts)

	var stdout bytes.Buffer
	err := f.run(ctx, f.config.Binary, args, strings.NewReader(input), &stdout)
	if errors.Is(err, ErrAborted) {
		f.logger.Debug("fzf aborted", zap.String("prompt", opts.Prompt))
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "run fzf")
	}

	name, ok := NameFromLine(firstLine(stdout.String()))
	f.logger.Debug("fzf finished",
		zap.String("prompt", opts.Prompt),
		zap.Int("candidates", len(candidates)),
		zap.String("selected", name))
	return name, ok, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// ExecRunner starts binary as a child process. The finder draws its interface
// on the controlling terminal through stderr. Exit codes 1 (no match) and
// 130 (interrupted) map to ErrAborted.
func ExecRunner(ctx context.Context, binary string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case 1, 130:
			return ErrAborted
		}
	}
	return err
}
