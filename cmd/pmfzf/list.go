package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/atinylittleshell/pmfzf/internal/selector"
	"github.com/atinylittleshell/pmfzf/internal/styles"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list <tool> [subcommand]",
		Short: "Print the candidates a completion would offer, without fzf",
		Example: `  pmfzf list yarn
  pmfzf list deno task
  pmfzf list npm run --query te`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: pm.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseTool(args[0])
			if err != nil {
				return err
			}

			var subcommand string
			if len(args) == 2 {
				subcommand = args[1]
			}
			if _, ok := kind.Profile().Sources(subcommand); !ok {
				known := lo.Keys(kind.Profile().Subcommands)
				slices.Sort(known)
				return errors.Newf("%s %s has no completions (try: %s)", kind, subcommand, strings.Join(known, ", "))
			}

			dir, err := a.workdir()
			if err != nil {
				return err
			}

			candidates := a.newAssembler().Assemble(kind, subcommand, dir)
			candidates = selector.Filter(candidates, query)

			out := cmd.OutOrStdout()
			if a.isTerminal() {
				title := strings.TrimSuffix(kind.Profile().Prompt(subcommand), " > ")
				fmt.Fprintln(out, styles.HEADER(fmt.Sprintf("%s: %d candidates", title, len(candidates))))
			}

			rows := lo.Map(candidates, func(c pm.Candidate, _ int) []string {
				return strings.SplitN(pm.FormatLine(c), "\t", 2)
			})
			return a.printTable(out, []string{"NAME", "DESCRIPTION"}, rows)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "rank and filter candidates by a fuzzy query")
	return cmd
}

func parseTool(name string) (pm.Kind, error) {
	kind, ok := pm.ParseKind(name)
	if !ok {
		return 0, errors.Newf("unknown tool %q (supported: %s)", name, strings.Join(pm.Names(), ", "))
	}
	return kind, nil
}
