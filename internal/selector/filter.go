package selector

import (
	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

type candidateSource []pm.Candidate

func (s candidateSource) String(i int) string { return s[i].Name }
func (s candidateSource) Len() int            { return len(s) }

// Filter ranks candidates by fuzzy match of their names against query, best
// match first. It is the non-interactive counterpart of the finder. An empty
// query returns candidates unchanged.
func Filter(candidates []pm.Candidate, query string) []pm.Candidate {
	if query == "" {
		return candidates
	}
	matches := fuzzy.FindFrom(query, candidateSource(candidates))
	return lo.Map(matches, func(m fuzzy.Match, _ int) pm.Candidate {
		return candidates[m.Index]
	})
}
