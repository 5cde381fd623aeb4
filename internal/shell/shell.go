// Package shell renders the snippets that register pmfzf as the completion
// provider of every supported tool.
package shell

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed init.*.tmpl
var templates embed.FS

const (
	Zsh  = "zsh"
	Bash = "bash"
)

// DismissedStatus is the exit status of `complete` when the user closed the
// selector without a choice. The snippets skip the shell's own completion on
// it.
const DismissedStatus = 2

// ErrUnsupportedShell is returned for shells without a snippet.
var ErrUnsupportedShell = errors.New("unsupported shell")

type scriptData struct {
	Binary    string
	Tools     string
	Dismissed int
}

// Supported lists the shells Script can render for.
func Supported() []string {
	return []string{Bash, Zsh}
}

// Script returns the snippet for shell that calls binary back on completion.
// binary is quoted so paths with spaces survive.
func Script(shell string, binary string) (string, error) {
	if !lo.Contains(Supported(), shell) {
		return "", errors.Wrapf(ErrUnsupportedShell, "%q (supported: %s)", shell, strings.Join(Supported(), ", "))
	}

	quoted, err := syntax.Quote(binary, syntax.LangBash)
	if err != nil {
		return "", errors.Wrapf(err, "quote %q", binary)
	}

	tmpl, err := template.ParseFS(templates, "init."+shell+".tmpl")
	if err != nil {
		return "", errors.Wrap(err, "parse snippet template")
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, scriptData{
		Binary:    quoted,
		Tools:     strings.Join(pm.Names(), " "),
		Dismissed: DismissedStatus,
	})
	if err != nil {
		return "", errors.Wrapf(err, "render %s snippet", shell)
	}
	return buf.String(), nil
}
