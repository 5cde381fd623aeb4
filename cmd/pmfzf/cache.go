package main

import (
	"fmt"
	"strconv"

	"github.com/atinylittleshell/pmfzf/internal/cache"
	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cached subcommand lists",
		Long: `Each tool's built-in subcommand list is written to <cache-dir>/<tool>.cache
on first use and never refreshed automatically. Clear it after upgrading pmfzf
to pick up new subcommands.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "List the cache files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c := a.newCache()
				entries, err := c.Status()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					_, err := fmt.Fprintf(out, "no cache files in %s\n", c.Root())
					return err
				}

				rows := lo.Map(entries, func(e cache.Entry, _ int) []string {
					return []string{
						e.Kind.String(),
						strconv.Itoa(e.Candidates),
						humanize.Bytes(uint64(e.Size)),
						humanize.Time(e.ModTime),
						e.Path,
					}
				})
				return a.printTable(out, []string{"TOOL", "ENTRIES", "SIZE", "WRITTEN", "PATH"}, rows)
			},
		},
		&cobra.Command{
			Use:       "clear [tool...]",
			Short:     "Remove the cache files of the given tools, or of all tools",
			ValidArgs: pm.Names(),
			RunE: func(cmd *cobra.Command, args []string) error {
				kinds := make([]pm.Kind, 0, len(args))
				for _, arg := range args {
					kind, err := parseTool(arg)
					if err != nil {
						return err
					}
					kinds = append(kinds, kind)
				}

				c := a.newCache()
				if err := c.Clear(kinds...); err != nil {
					return err
				}
				a.logger.Info("cache cleared", zap.String("root", c.Root()), zap.Strings("tools", args))
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", c.Root())
				return err
			},
		},
	)
	return cmd
}
