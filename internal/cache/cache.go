// Package cache persists the rendered static subcommand table of each tool as
// a plain text file so later completions read it instead of rebuilding it.
//
// Cache files are never invalidated automatically: once written, a tool's
// file is reused until it is removed (see Clear).
package cache

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Extension is the suffix of every cache file.
const Extension = ".cache"

// Renderer produces the candidate list that is persisted for a tool.
type Renderer func(kind pm.Kind) []pm.Candidate

// Cache is a per-tool on-disk store rooted at a fixed directory.
type Cache struct {
	root   string
	render Renderer
	logger *zap.Logger
}

// Entry describes one cache file on disk.
type Entry struct {
	Kind       pm.Kind
	Path       string
	Size       int64
	ModTime    time.Time
	Candidates int
}

// New creates a cache rooted at root. The directory is created on first write.
func New(root string, render Renderer, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		root:   root,
		render: render,
		logger: logger,
	}
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// Path returns the cache file of kind.
func (c *Cache) Path(kind pm.Kind) string {
	return filepath.Join(c.root, kind.String()+Extension)
}

// Get returns the persisted candidates of kind, rendering and persisting them
// first when no usable cache file exists. I/O failures fall back to the
// freshly rendered list.
func (c *Cache) Get(kind pm.Kind) []pm.Candidate {
	path := c.Path(kind)

	candidates, err := readFile(path)
	if err == nil && len(candidates) > 0 {
		return candidates
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("unreadable completion cache, rebuilding", zap.String("path", path), zap.Error(err))
	}

	candidates = c.render(kind)
	if err := c.write(path, candidates); err != nil {
		c.logger.Warn("failed to persist completion cache", zap.String("path", path), zap.Error(err))
	} else {
		c.logger.Debug("completion cache written", zap.String("path", path), zap.Int("candidates", len(candidates)))
	}
	return candidates
}

// Clear removes the cache files of the given kinds, or of every kind when
// none are given. Missing files are not an error.
func (c *Cache) Clear(kinds ...pm.Kind) error {
	if len(kinds) == 0 {
		kinds = pm.All()
	}

	var errs []error
	for _, kind := range kinds {
		err := os.Remove(c.Path(kind))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, errors.Wrapf(err, "remove %s cache", kind))
		}
	}
	return errors.Join(errs...)
}

// Status lists the cache files that currently exist, in kind order.
func (c *Cache) Status() ([]Entry, error) {
	var entries []Entry
	for _, kind := range pm.All() {
		path := c.Path(kind)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}

		candidates, _ := readFile(path)
		entries = append(entries, Entry{
			Kind:       kind,
			Path:       path,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			Candidates: len(candidates),
		})
	}
	return entries, nil
}

// write replaces path atomically so a concurrent reader never sees a partial
// file. Concurrent writers race with last-writer-wins.
func (c *Cache) write(path string, candidates []pm.Candidate) error {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		return errors.Wrap(err, "create cache directory")
	}

	tmp, err := os.CreateTemp(c.root, filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(Encode(candidates)); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "rename cache file")
}

func readFile(path string) ([]pm.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data), nil
}

// Encode renders candidates as newline-terminated `name<TAB>description` lines.
func Encode(candidates []pm.Candidate) []byte {
	var buf bytes.Buffer
	for _, c := range candidates {
		buf.WriteString(pm.FormatLine(c))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Decode parses the output of Encode, skipping blank or nameless lines.
func Decode(data []byte) []pm.Candidate {
	var candidates []pm.Candidate
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if c, ok := pm.ParseLine(scanner.Text()); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}
