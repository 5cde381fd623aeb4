package pm

import (
	"strings"

	"github.com/samber/lo"
)

// Candidate is one selectable completion item.
type Candidate struct {
	Name        string
	Description string

	// Source tags the origin of the candidate when it is shown next to static
	// subcommands. Empty for unlabeled candidates.
	Source string
}

// Display returns the description as shown to the user, prefixed with the
// origin label when one is set.
func (c Candidate) Display() string {
	if c.Source == "" {
		return c.Description
	}
	if c.Description == "" {
		return "[" + c.Source + "]"
	}
	return "[" + c.Source + "] " + c.Description
}

// Label returns a copy of candidates tagged with source.
func Label(candidates []Candidate, source string) []Candidate {
	return lo.Map(candidates, func(c Candidate, _ int) Candidate {
		c.Source = source
		return c
	})
}

// CandidateNames returns the names of candidates in order.
func CandidateNames(candidates []Candidate) []string {
	return lo.Map(candidates, func(c Candidate, _ int) string {
		return c.Name
	})
}

// Dedup concatenates lists and keeps the first candidate seen for each name.
// Candidates with an empty name are dropped.
func Dedup(lists ...[]Candidate) []Candidate {
	all := lo.Filter(lo.Flatten(lists), func(c Candidate, _ int) bool {
		return strings.TrimSpace(c.Name) != ""
	})
	return lo.UniqBy(all, func(c Candidate) string {
		return c.Name
	})
}

var fieldSanitizer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// FormatLine renders c as a single `name<TAB>description` line without the
// trailing newline. Tabs and line breaks inside fields are replaced with
// spaces so that ParseLine recovers the same pair.
func FormatLine(c Candidate) string {
	return fieldSanitizer.Replace(c.Name) + "\t" + fieldSanitizer.Replace(c.Display())
}

// ParseLine is the inverse of FormatLine. ok is false for blank lines and
// lines without a name.
func ParseLine(line string) (c Candidate, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	name, description, _ := strings.Cut(line, "\t")
	if strings.TrimSpace(name) == "" {
		return Candidate{}, false
	}
	return Candidate{Name: name, Description: description}, true
}
