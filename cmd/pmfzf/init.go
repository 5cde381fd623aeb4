package main

import (
	"fmt"

	"github.com/atinylittleshell/pmfzf/internal/selector"
	"github.com/atinylittleshell/pmfzf/internal/shell"
	"github.com/atinylittleshell/pmfzf/internal/styles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "init <zsh|bash>",
		Short:     "Print the shell snippet that enables pmfzf completion",
		Example:   `  eval "$(pmfzf init zsh)"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Supported(),
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, err := a.executable()
			if err != nil {
				a.logger.Warn("cannot resolve own path, relying on PATH", zap.Error(err))
				binary = "pmfzf"
			}

			script, err := shell.Script(args[0], binary)
			if err != nil {
				return err
			}

			// Registering completion without a usable fzf would break TAB,
			// so nothing is printed on stdout in that case.
			if _, err := a.checkedFzf(cmd.Context()); err != nil {
				a.logger.Error("fzf check failed", zap.Error(err))
				stderr := cmd.ErrOrStderr()
				fmt.Fprintln(stderr, styles.ERROR("pmfzf: "+err.Error()))
				fmt.Fprintln(stderr, styles.HINT(
					"Install fzf "+selector.MinimumFzfVersion+" or newer (https://github.com/junegunn/fzf) or set fzf.binary in the config."))
				return errReported
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}
}
