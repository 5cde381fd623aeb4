// Package manifest reads project files (package.json, deno.json, deno.jsonc)
// into ordered candidate lists. Missing or malformed files never produce an
// error: they yield an empty set.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	"github.com/tailscale/hujson"
	"go.uber.org/zap"
)

const (
	PackageJSON = "package.json"
	DenoJSON    = "deno.json"
	DenoJSONC   = "deno.jsonc"
)

// TaskSet is the ordered list of named commands found in one project file.
type TaskSet struct {
	Origin  pm.Source
	Entries []pm.Candidate
}

// Reader loads task sets from a project directory.
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a Reader. A nil logger discards diagnostics.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// Scripts returns the `scripts` map of dir/package.json in file order.
// Non-string values are skipped.
func (r *Reader) Scripts(dir string) TaskSet {
	set := TaskSet{Origin: pm.SourceScripts}

	path := filepath.Join(dir, PackageJSON)
	data, err := os.ReadFile(path)
	if err != nil {
		r.logMissing(path, err)
		return set
	}

	entries, err := orderedEntries(data, "scripts", false)
	if err != nil {
		r.logger.Debug("ignoring package.json", zap.String("path", path), zap.Error(err))
		return set
	}
	set.Entries = entries
	return set
}

// Tasks returns the `tasks` map of dir/deno.json, or of dir/deno.jsonc when
// deno.json does not exist. Comments are stripped from the jsonc variant.
// Structured task definitions are rendered as their compact JSON text.
func (r *Reader) Tasks(dir string) TaskSet {
	set := TaskSet{Origin: pm.SourceTasks}

	path, commented := taskConfigPath(dir)
	if path == "" {
		return set
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logMissing(path, err)
		return set
	}

	if commented {
		data, err = hujson.Standardize(data)
		if err != nil {
			r.logger.Debug("ignoring deno.jsonc", zap.String("path", path), zap.Error(err))
			return set
		}
	}

	entries, err := orderedEntries(data, "tasks", true)
	if err != nil {
		r.logger.Debug("ignoring deno config", zap.String("path", path), zap.Error(err))
		return set
	}
	set.Entries = entries
	return set
}

func (r *Reader) logMissing(path string, err error) {
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	r.logger.Debug("cannot read project file", zap.String("path", path), zap.Error(err))
}

// taskConfigPath picks deno.json over deno.jsonc when both exist.
func taskConfigPath(dir string) (path string, commented bool) {
	for _, name := range []string{DenoJSON, DenoJSONC} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, name == DenoJSONC
		}
	}
	return "", false
}

// orderedEntries walks the object stored under key in document order. A key
// that is absent or not an object is an error; callers treat both the same.
func orderedEntries(data []byte, key string, structured bool) ([]pm.Candidate, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON")
	}

	var entries []pm.Candidate
	err := jsonparser.ObjectEach(data, func(rawKey []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		// ObjectEach hands out keys already unescaped.
		name := string(rawKey)

		switch {
		case dataType == jsonparser.String:
			command, err := jsonparser.ParseString(value)
			if err != nil {
				return errors.Wrapf(err, "decode value of %q", name)
			}
			entries = append(entries, pm.Candidate{Name: name, Description: command})
		case structured:
			entries = append(entries, pm.Candidate{Name: name, Description: compactJSON(value, dataType)})
		}
		return nil
	}, key)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", key)
	}
	return entries, nil
}

func compactJSON(value []byte, dataType jsonparser.ValueType) string {
	if dataType != jsonparser.Object && dataType != jsonparser.Array {
		return string(value)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return string(value)
	}
	return buf.String()
}
