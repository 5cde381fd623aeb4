package completion

import (
	"context"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/atinylittleshell/pmfzf/internal/selector"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Request is the routing decision for one completion attempt.
type Request struct {
	Kind pm.Kind

	// Subcommand is empty when completing the first word after the tool.
	Subcommand string

	// Word is the partially typed word under the cursor.
	Word string

	Prompt string
	Query  string
}

// CandidateAssembler builds the candidate list for a request.
type CandidateAssembler interface {
	Assemble(kind pm.Kind, subcommand string, dir string) []pm.Candidate
}

// Router decides from the command line words which candidates to offer and
// runs the selector. It keeps no state between calls.
type Router struct {
	assembler CandidateAssembler
	selector  selector.Selector
	logger    *zap.Logger
}

// NewRouter creates a Router.
func NewRouter(assembler CandidateAssembler, sel selector.Selector, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		assembler: assembler,
		selector:  sel,
		logger:    logger,
	}
}

// Route inspects words (the tool first) and the index of the word under the
// cursor. ok is false when the position has no completion policy.
func Route(words []string, current int) (Request, bool) {
	if len(words) == 0 || current < 1 {
		return Request{}, false
	}
	kind, ok := pm.ParseKind(words[0])
	if !ok {
		return Request{}, false
	}
	profile := kind.Profile()

	word := ""
	if current < len(words) {
		word = words[current]
	}

	var subcommand string
	switch {
	case current == 1:
		// The tool's own name at command position is what the shell passes
		// before anything was typed.
		if word == profile.Name {
			word = ""
		}
	case current == 2:
		subcommand = words[1]
		if _, ok := profile.Sources(subcommand); !ok {
			return Request{}, false
		}
	default:
		return Request{}, false
	}

	return Request{
		Kind:       kind,
		Subcommand: subcommand,
		Word:       word,
		Prompt:     profile.Prompt(subcommand),
		Query:      selector.PrefillQuery(word),
	}, true
}

// Candidates returns the routing decision and its candidates without running
// the selector.
func (r *Router) Candidates(words []string, current int, dir string) (Request, []pm.Candidate, bool) {
	req, ok := Route(words, current)
	if !ok {
		return Request{}, nil, false
	}
	return req, r.assembler.Assemble(req.Kind, req.Subcommand, dir), true
}

// Outcome tells the shell what happened in a completion attempt.
type Outcome int

const (
	// Unhandled means the position has no policy or nothing to offer. The
	// shell may fall back to its own completion.
	Unhandled Outcome = iota

	// Dismissed means the selector was shown and closed without a choice.
	// Nothing may be inserted.
	Dismissed

	Selected
)

func (o Outcome) String() string {
	switch o {
	case Dismissed:
		return "dismissed"
	case Selected:
		return "selected"
	default:
		return "unhandled"
	}
}

// Complete runs the whole pipeline for one completion attempt in dir. The
// name is only set when the outcome is Selected.
func (r *Router) Complete(ctx context.Context, words []string, current int, dir string) (string, Outcome, error) {
	req, candidates, ok := r.Candidates(words, current, dir)
	if !ok {
		r.logger.Debug("no completion policy", zap.Strings("words", words), zap.Int("current", current))
		return "", Unhandled, nil
	}
	if len(candidates) == 0 {
		r.logger.Debug("no candidates", zap.Stringer("tool", req.Kind), zap.String("subcommand", req.Subcommand))
		return "", Unhandled, nil
	}

	name, ok, err := r.selector.Select(ctx, candidates, selector.Options{
		Prompt: req.Prompt,
		Query:  req.Query,
	})
	if err != nil {
		return "", Unhandled, errors.Wrapf(err, "select %s candidate", req.Kind)
	}
	if !ok {
		return "", Dismissed, nil
	}
	return name, Selected, nil
}
