// Package completion turns a partially typed package-manager command line
// into a list of candidates and feeds it to the interactive selector.
package completion

import (
	"github.com/atinylittleshell/pmfzf/internal/manifest"
	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CatalogSource returns the static subcommands of a tool, typically through
// the on-disk cache.
type CatalogSource interface {
	Get(kind pm.Kind) []pm.Candidate
}

// ProjectReader reads the project files of a working directory.
type ProjectReader interface {
	Scripts(dir string) manifest.TaskSet
	Tasks(dir string) manifest.TaskSet
	SourceFiles(dir string, limit int) []pm.Candidate
}

// Assembler merges candidate sources according to each tool's profile.
type Assembler struct {
	catalog   CatalogSource
	project   ProjectReader
	fileLimit int
	logger    *zap.Logger
}

// NewAssembler creates an Assembler. fileLimit caps the source files offered
// by `deno run`.
func NewAssembler(catalog CatalogSource, project ProjectReader, fileLimit int, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileLimit <= 0 {
		fileLimit = manifest.DefaultSourceFileLimit
	}
	return &Assembler{
		catalog:   catalog,
		project:   project,
		fileLimit: fileLimit,
		logger:    logger,
	}
}

// Assemble returns the candidates for kind and subcommand ("" for the first
// word after the tool) in dir. Project entries are labeled with their origin
// when they share the list with static subcommands. Duplicated names keep
// their first occurrence.
func (a *Assembler) Assemble(kind pm.Kind, subcommand string, dir string) []pm.Candidate {
	sources, ok := kind.Profile().Sources(subcommand)
	if !ok {
		return nil
	}
	labeled := lo.Contains(sources, pm.SourceCatalog)

	lists := make([][]pm.Candidate, 0, len(sources))
	for _, source := range sources {
		lists = append(lists, a.collect(kind, source, dir, labeled))
	}

	candidates := pm.Dedup(lists...)
	a.logger.Debug("assembled candidates",
		zap.Stringer("tool", kind),
		zap.String("subcommand", subcommand),
		zap.String("dir", dir),
		zap.Int("count", len(candidates)))
	return candidates
}

func (a *Assembler) collect(kind pm.Kind, source pm.Source, dir string, labeled bool) []pm.Candidate {
	var set manifest.TaskSet
	switch source {
	case pm.SourceCatalog:
		return a.catalog.Get(kind)
	case pm.SourceFiles:
		return a.project.SourceFiles(dir, a.fileLimit)
	case pm.SourceScripts:
		set = a.project.Scripts(dir)
	case pm.SourceTasks:
		set = a.project.Tasks(dir)
	default:
		return nil
	}

	if labeled {
		return pm.Label(set.Entries, set.Origin.Label())
	}
	return set.Entries
}
