package main

import (
	"fmt"

	"github.com/atinylittleshell/pmfzf/internal/completion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const completeCmdName = "complete"

func newCompleteCmd(a *app) *cobra.Command {
	var (
		cword int
		line  string
		point int
	)

	cmd := &cobra.Command{
		Use:   completeCmdName + " [--cword N] -- <words...>",
		Short: "Pick a completion for the given command line with fzf",
		Long: `Runs one completion attempt and prints the chosen word. It prints nothing
and exits 0 when there is nothing to offer, and exits 2 when the selection was
aborted so the shell inserts nothing.

The command line is given either as words (the tool first) with the index of
the word under the cursor, or as the raw line and cursor offset bash exposes
in COMP_LINE and COMP_POINT.`,
		Example: `  pmfzf complete --cword 2 -- npm run ""
  pmfzf complete --line "$COMP_LINE" --point "$COMP_POINT"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, current := args, cword
			if cmd.Flags().Changed("line") {
				words, current = completion.ParseLine(line, point)
			} else if current < 0 {
				current = len(words) - 1
			}

			fzf, err := a.fzfPath()
			if err != nil {
				return err
			}

			// Past the fzf check nothing fails loudly; the shell falls back
			// to its own completion.
			dir, err := a.workdir()
			if err != nil {
				a.logger.Warn("cannot resolve working directory", zap.Error(err))
				return nil
			}

			router := completion.NewRouter(a.newAssembler(), a.newSelector(fzf, a.logger), a.logger)
			name, outcome, err := router.Complete(cmd.Context(), words, current, dir)
			if err != nil {
				a.logger.Warn("completion failed", zap.Strings("words", words), zap.Int("current", current), zap.Error(err))
				return nil
			}

			switch outcome {
			case completion.Selected:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
				return err
			case completion.Dismissed:
				a.logger.Debug("selection dismissed", zap.Strings("words", words), zap.Int("current", current))
				return errDismissed
			default:
				return nil
			}
		},
	}

	cmd.Flags().IntVar(&cword, "cword", -1, "index of the word under the cursor (default: the last word)")
	cmd.Flags().StringVar(&line, "line", "", "raw command line, as in COMP_LINE")
	cmd.Flags().IntVar(&point, "point", -1, "cursor offset in --line, as in COMP_POINT (default: end of line)")
	return cmd
}
