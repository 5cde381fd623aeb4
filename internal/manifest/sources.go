package manifest

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"go.uber.org/zap"
)

// DefaultSourceFileLimit caps the number of files offered for `deno run`.
const DefaultSourceFileLimit = 20

// maxSourceDepth is the deepest path component count considered: dir/a.ts is
// depth 1, dir/src/a.ts is depth 2.
const maxSourceDepth = 2

var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".mts": true,
	".cjs": true,
	".cts": true,
}

// SourceFiles lists up to limit runnable source files at depth 2 or less under
// dir, as "./"-prefixed slash paths in walk order. Hidden directories and
// node_modules are skipped. A non-positive limit uses DefaultSourceFileLimit.
func (r *Reader) SourceFiles(dir string, limit int) []pm.Candidate {
	if limit <= 0 {
		limit = DefaultSourceFileLimit
	}

	var files []pm.Candidate
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the walk goes on.
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(rel), "/") + 1

		if d.IsDir() {
			if depth >= maxSourceDepth || skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if !sourceExtensions[filepath.Ext(d.Name())] {
			return nil
		}

		files = append(files, pm.Candidate{
			Name:        "./" + filepath.ToSlash(rel),
			Description: pm.SourceFiles.Label(),
		})
		if len(files) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		r.logger.Debug("source file walk stopped", zap.String("dir", dir), zap.Error(err))
	}

	return files
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
