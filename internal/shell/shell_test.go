package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/syntax"
)

func TestScriptRegistersEveryTool(t *testing.T) {
	for _, sh := range Supported() {
		t.Run(sh, func(t *testing.T) {
			script, err := Script(sh, "pmfzf")
			require.NoError(t, err)

			assert.Contains(t, script, "yarn bun npm deno")
			assert.Contains(t, script, "pmfzf complete")
		})
	}
}

func TestBashScript(t *testing.T) {
	script, err := Script(Bash, "/opt/my tools/pmfzf")
	require.NoError(t, err)

	assert.Contains(t, script, `'/opt/my tools/pmfzf' complete --line "$COMP_LINE" --point "$COMP_POINT"`)
	assert.Contains(t, script, "complete -o default -F _pmfzf_complete yarn bun npm deno")
	assert.Contains(t, script, "elif (( rc == 2 )); then\n    compopt +o default", "a dismissed selector must not fall back to file completion")

	_, err = syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(script), "init.bash")
	assert.NoError(t, err, "snippet must be valid bash")
}

func TestZshScript(t *testing.T) {
	script, err := Script(Zsh, "pmfzf")
	require.NoError(t, err)

	assert.Contains(t, script, `pmfzf complete --cword $((CURRENT - 1)) -- "${words[@]}"`)
	assert.Contains(t, script, "compdef _pmfzf_complete yarn bun npm deno")

	dismissed := strings.Index(script, "(( rc == 2 )) && return 0")
	require.NotEqual(t, -1, dismissed)
	assert.Less(t, dismissed, strings.Index(script, "  _default\n"), "a dismissed selector must return before the default completion")
}

func TestScriptUnsupportedShell(t *testing.T) {
	_, err := Script("fish", "pmfzf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedShell)
	assert.Contains(t, err.Error(), "fish")
}
