package catalog

import (
	"testing"

	"github.com/atinylittleshell/pmfzf/internal/pm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEveryKind(t *testing.T) {
	for _, kind := range pm.All() {
		t.Run(kind.String(), func(t *testing.T) {
			candidates := Lookup(kind)
			require.NotEmpty(t, candidates)

			seen := make(map[string]bool)
			for _, c := range candidates {
				assert.NotEmpty(t, c.Name)
				assert.NotEmpty(t, c.Description, "%s %s has no description", kind, c.Name)
				assert.NotContains(t, c.Description, "\t")
				assert.False(t, seen[c.Name], "duplicate subcommand %q", c.Name)
				seen[c.Name] = true
			}

			assert.True(t, seen["run"], "%s catalog should list run", kind)
		})
	}
}

func TestLookupDenoListsTask(t *testing.T) {
	assert.Contains(t, pm.CandidateNames(Lookup(pm.Deno)), "task")
}

func TestLookupReturnsCopy(t *testing.T) {
	first := Lookup(pm.Npm)
	first[0].Name = "mutated"

	second := Lookup(pm.Npm)
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestLookupUnknownKind(t *testing.T) {
	assert.Empty(t, Lookup(pm.Kind(99)))
}
