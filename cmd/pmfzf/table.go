package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// printTable renders rows as a bordered table on a terminal and as
// tab-separated lines, without the header, everywhere else.
func (a *app) printTable(w io.Writer, headers []string, rows [][]string) error {
	if !a.isTerminal() {
		for _, row := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			return styles.TableCell
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
