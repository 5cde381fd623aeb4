// Package pm describes the package-manager CLIs that pmfzf completes for:
// their kinds, per-tool completion policies and the candidate type shared by
// every completion source.
package pm

import (
	"path/filepath"
	"strings"
)

// Kind identifies a supported package-manager CLI.
type Kind int

const (
	// Yarn runs package.json scripts as top-level words (`yarn dev`).
	Yarn Kind = iota
	// Bun runs package.json scripts as top-level words (`bun dev`).
	Bun
	// Npm only exposes package.json scripts through `npm run`.
	Npm
	// Deno exposes deno.json tasks and runnable source files.
	Deno
)

// Source is one origin of completion candidates.
type Source int

const (
	// SourceCatalog is the cached static subcommand table.
	SourceCatalog Source = iota
	// SourceScripts is the `scripts` map of package.json.
	SourceScripts
	// SourceTasks is the `tasks` map of deno.json or deno.jsonc.
	SourceTasks
	// SourceFiles is the set of runnable source files near the working directory.
	SourceFiles
)

// Label is the origin tag shown next to candidates from s when they are mixed
// with static subcommands.
func (s Source) Label() string {
	switch s {
	case SourceScripts:
		return "package.json script"
	case SourceTasks:
		return "deno.json task"
	case SourceFiles:
		return "source file"
	default:
		return ""
	}
}

// Profile is the fixed completion policy of one tool.
type Profile struct {
	Kind Kind
	Name string

	// TopLevel lists the sources offered for the first word after the tool.
	TopLevel []Source

	// Subcommands maps a second word to the sources offered for the third.
	Subcommands map[string][]Source
}

// Prompt returns the selector prompt for the given subcommand ("" for the
// top level).
func (p Profile) Prompt(subcommand string) string {
	if subcommand == "" {
		return p.Name + " > "
	}
	return p.Name + " " + subcommand + " > "
}

// Sources returns the candidate sources for subcommand. ok is false when the
// subcommand has no completion policy.
func (p Profile) Sources(subcommand string) (sources []Source, ok bool) {
	if subcommand == "" {
		return p.TopLevel, true
	}
	sources, ok = p.Subcommands[subcommand]
	return sources, ok
}

var profiles = [...]Profile{
	Yarn: {
		Kind:        Yarn,
		Name:        "yarn",
		TopLevel:    []Source{SourceCatalog, SourceScripts},
		Subcommands: map[string][]Source{"run": {SourceScripts}},
	},
	Bun: {
		Kind:        Bun,
		Name:        "bun",
		TopLevel:    []Source{SourceCatalog, SourceScripts},
		Subcommands: map[string][]Source{"run": {SourceScripts}},
	},
	Npm: {
		Kind:        Npm,
		Name:        "npm",
		TopLevel:    []Source{SourceCatalog},
		Subcommands: map[string][]Source{"run": {SourceScripts}},
	},
	Deno: {
		Kind:     Deno,
		Name:     "deno",
		TopLevel: []Source{SourceCatalog, SourceTasks},
		Subcommands: map[string][]Source{
			"run":  {SourceScripts, SourceTasks, SourceFiles},
			"task": {SourceTasks},
		},
	},
}

// All returns every supported kind in declaration order.
func All() []Kind {
	return []Kind{Yarn, Bun, Npm, Deno}
}

// Names returns the command names of every supported tool.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}

// Profile returns the completion policy of k.
func (k Kind) Profile() Profile {
	return profiles[k]
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(profiles) {
		return "unknown"
	}
	return profiles[k].Name
}

// Lookup returns the kind whose command name is exactly name.
func Lookup(name string) (Kind, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p.Kind, true
		}
	}
	return 0, false
}

// ParseKind resolves an invocation word such as "npm", "/usr/local/bin/bun"
// or "yarn.cmd" to its kind.
func ParseKind(invocation string) (Kind, bool) {
	base := filepath.Base(invocation)
	for _, ext := range []string{".exe", ".cmd", ".ps1"} {
		base = strings.TrimSuffix(base, ext)
	}
	return Lookup(base)
}

// IsReservedWord reports whether word selects a subcommand policy for any
// tool.
func IsReservedWord(word string) bool {
	for _, p := range profiles {
		if _, ok := p.Subcommands[word]; ok {
			return true
		}
	}
	return false
}
