// Package selector presents completion candidates through an interactive
// fuzzy finder and returns the chosen name.
package selector

import (
	"context"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/samber/lo"
)

// Options configures one selection.
type Options struct {
	// Prompt is shown in front of the query line.
	Prompt string

	// Query pre-fills the search field. Empty means an unfiltered list.
	Query string
}

// Selector picks one candidate. ok is false when the user aborted or nothing
// matched; that is not an error.
type Selector interface {
	Select(ctx context.Context, candidates []pm.Candidate, opts Options) (name string, ok bool, err error)
}

// Lines renders candidates the way they are fed to the finder.
func Lines(candidates []pm.Candidate) []string {
	return lo.Map(candidates, func(c pm.Candidate, _ int) string {
		return pm.FormatLine(c)
	})
}

// NameFromLine extracts the candidate name from a line returned by the
// finder: its first whitespace-delimited token.
func NameFromLine(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// PrefillQuery returns the query to pre-fill for the partially typed word.
// Tool names and subcommand words are never used as a filter.
func PrefillQuery(word string) string {
	if _, isTool := pm.Lookup(word); isTool {
		return ""
	}
	if pm.IsReservedWord(word) {
		return ""
	}
	return word
}
