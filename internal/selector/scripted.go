package selector

import (
	"context"

	"github.com/atinylittleshell/pmfzf/internal/pm"
)

// ScriptedCall records one invocation of a Scripted selector.
type ScriptedCall struct {
	Lines   []string
	Options Options
}

// Scripted is a deterministic Selector for tests and non-interactive use.
// It picks Choice when that name is among the candidates, the first candidate
// when Choice is empty, and reports an abort when Abort is set.
type Scripted struct {
	Choice string
	Abort  bool
	Err    error

	Calls []ScriptedCall
}

func (s *Scripted) Select(_ context.Context, candidates []pm.Candidate, opts Options) (string, bool, error) {
	s.Calls = append(s.Calls, ScriptedCall{Lines: Lines(candidates), Options: opts})

	if s.Err != nil {
		return "", false, s.Err
	}
	if s.Abort || len(candidates) == 0 {
		return "", false, nil
	}
	if s.Choice == "" {
		return candidates[0].Name, true, nil
	}
	for _, c := range candidates {
		if c.Name == s.Choice {
			return c.Name, true, nil
		}
	}
	return "", false, nil
}
