package selector

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scripts = []pm.Candidate{
	{Name: "dev", Description: "vite"},
	{Name: "test", Description: "vitest run"},
	{Name: "install", Description: "Install a package"},
}

// fakeRunner records the invocation and replies with a canned stdout.
type fakeRunner struct {
	binary string
	args   []string
	stdin  string
	reply  string
	err    error
}

func (f *fakeRunner) run(_ context.Context, binary string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.binary = binary
	f.args = args
	data, _ := io.ReadAll(stdin)
	f.stdin = string(data)
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(stdout, f.reply)
	return err
}

func TestFzfSelect(t *testing.T) {
	runner := &fakeRunner{reply: "test\tvitest run\n"}
	f := NewFzf(DefaultFzfConfig(), runner.run, nil)

	name, ok, err := f.Select(context.Background(), scripts, Options{Prompt: "npm run > ", Query: "te"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "test", name)
	assert.Equal(t, "fzf", runner.binary)
	assert.Equal(t, "dev\tvite\ntest\tvitest run\ninstall\tInstall a package\n", runner.stdin)
	assert.Contains(t, runner.args, "--prompt=npm run > ")
	assert.Contains(t, runner.args, "--query=te")
	assert.Contains(t, runner.args, "--bind=tab:accept")
	assert.Contains(t, runner.args, "--with-nth=1")
	assert.Contains(t, runner.args, "--height=40%")
}

func TestFzfSelectAborted(t *testing.T) {
	runner := &fakeRunner{err: ErrAborted}
	f := NewFzf(DefaultFzfConfig(), runner.run, nil)

	name, ok, err := f.Select(context.Background(), scripts, Options{Prompt: "yarn > "})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestFzfSelectEmptyOutput(t *testing.T) {
	runner := &fakeRunner{reply: ""}
	f := NewFzf(DefaultFzfConfig(), runner.run, nil)

	_, ok, err := f.Select(context.Background(), scripts, Options{})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFzfSelectRunError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exec: permission denied")}
	f := NewFzf(DefaultFzfConfig(), runner.run, nil)

	_, ok, err := f.Select(context.Background(), scripts, Options{})

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestFzfSelectNoCandidatesSkipsProcess(t *testing.T) {
	runner := &fakeRunner{reply: "dev\n"}
	f := NewFzf(DefaultFzfConfig(), runner.run, nil)

	_, ok, err := f.Select(context.Background(), nil, Options{})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, runner.binary, "fzf should not be started")
}

func TestFzfArgs(t *testing.T) {
	config := DefaultFzfConfig()
	config.AcceptKey = "ctrl-space"
	config.ExtraArgs = []string{"--border", "--height=60%"}
	f := NewFzf(config, nil, nil)

	args := f.Args(Options{Prompt: "deno task > "})

	assert.Equal(t, "--delimiter=\t", args[0])
	assert.Contains(t, args, "--preview=echo {2..}")
	assert.Contains(t, args, "--preview-window=down:3:wrap")
	assert.Contains(t, args, "--bind=ctrl-space:accept")
	for _, arg := range args {
		assert.False(t, strings.HasPrefix(arg, "--query"), "empty query must not be passed")
	}
	// Extra args come last so they win over the defaults.
	assert.Equal(t, []string{"--border", "--height=60%"}, args[len(args)-2:])
}

func TestNameFromLine(t *testing.T) {
	name, ok := NameFromLine("build\t[package.json script] tsc")
	assert.True(t, ok)
	assert.Equal(t, "build", name)

	name, ok = NameFromLine("  ./src/main.ts\tsource file")
	assert.True(t, ok)
	assert.Equal(t, "./src/main.ts", name)

	_, ok = NameFromLine("   ")
	assert.False(t, ok)
}

func TestPrefillQuery(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"", ""},
		{"npm", ""},
		{"deno", ""},
		{"run", ""},
		{"task", ""},
		{"de", "de"},
		{"install", "install"},
		{"runner", "runner"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrefillQuery(tt.word))
		})
	}
}

func TestFilter(t *testing.T) {
	candidates := []pm.Candidate{
		{Name: "install"},
		{Name: "dev"},
		{Name: "dedupe"},
		{Name: "test"},
	}

	assert.Equal(t, candidates, Filter(candidates, ""))

	filtered := pm.CandidateNames(Filter(candidates, "dd"))
	assert.Equal(t, []string{"dedupe"}, filtered)

	filtered = pm.CandidateNames(Filter(candidates, "de"))
	assert.ElementsMatch(t, []string{"dev", "dedupe"}, filtered)

	assert.Empty(t, Filter(candidates, "zzz"))
}

func TestScripted(t *testing.T) {
	s := &Scripted{Choice: "test"}

	name, ok, err := s.Select(context.Background(), scripts, Options{Prompt: "p"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "test", name)
	require.Len(t, s.Calls, 1)
	assert.Equal(t, Lines(scripts), s.Calls[0].Lines)
	assert.Equal(t, "p", s.Calls[0].Options.Prompt)

	_, ok, _ = (&Scripted{Choice: "missing"}).Select(context.Background(), scripts, Options{})
	assert.False(t, ok)

	name, ok, _ = (&Scripted{}).Select(context.Background(), scripts, Options{})
	assert.True(t, ok)
	assert.Equal(t, "dev", name)

	_, ok, _ = (&Scripted{Abort: true}).Select(context.Background(), scripts, Options{})
	assert.False(t, ok)
}

func stubBinary(t *testing.T, found bool, version string, versionErr error) {
	t.Helper()
	origLookPath, origVersion := lookPath, fzfVersion
	t.Cleanup(func() {
		lookPath, fzfVersion = origLookPath, origVersion
	})

	lookPath = func(file string) (string, error) {
		if !found {
			return "", errors.New("executable file not found in $PATH")
		}
		return "/usr/bin/" + file, nil
	}
	fzfVersion = func(context.Context, string) (string, error) {
		return version, versionErr
	}
}

func TestCheckBinary(t *testing.T) {
	t.Run("recent version", func(t *testing.T) {
		stubBinary(t, true, "0.44.1 (d7d2ac3)", nil)

		info, err := CheckBinary(context.Background(), "fzf")
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/fzf", info.Path)
		assert.True(t, info.Version.Equal(semver.MustParse("0.44.1")))
	})

	t.Run("missing binary", func(t *testing.T) {
		stubBinary(t, false, "", nil)

		_, err := CheckBinary(context.Background(), "fzf")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFzfNotFound)
	})

	t.Run("too old", func(t *testing.T) {
		stubBinary(t, true, "0.20.0", nil)

		_, err := CheckBinary(context.Background(), "fzf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too old")
	})

	t.Run("unparsable version is accepted", func(t *testing.T) {
		stubBinary(t, true, "devel", nil)

		info, err := CheckBinary(context.Background(), "fzf")
		require.NoError(t, err)
		assert.Nil(t, info.Version)
		assert.Equal(t, "devel", info.Raw)
	})

	t.Run("version query fails", func(t *testing.T) {
		stubBinary(t, true, "", errors.New("exit status 2"))

		_, err := CheckBinary(context.Background(), "fzf")
		require.Error(t, err)
	})
}

func TestLookupBinary(t *testing.T) {
	stubBinary(t, true, "", errors.New("must not run"))

	path, err := LookupBinary("fzf")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/fzf", path)

	stubBinary(t, false, "", nil)

	_, err = LookupBinary("fzf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFzfNotFound)
	assert.Contains(t, err.Error(), "fzf is not on PATH")
}
