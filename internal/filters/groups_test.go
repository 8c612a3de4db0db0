package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sim-tools/simapps/internal/models"
)

func makeGroup(name string) models.Group {
	return models.Group{ID: name, Name: name}
}

func makeGroups(names ...string) []models.Group {
	groups := make([]models.Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, makeGroup(name))
	}
	return groups
}

func groupNames(groups []models.Group) []string {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
	}
	return names
}

func TestBaseProjectName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"pr92no", "pr92no"},
		{"pr92no-ai-c", "pr92no"},
		{"pr92no-ai-h-mcml", "pr92no"},
		{"alpha-ai-c-ai-h-mcml", "alpha-ai-c"}, // only the trailing suffix strips
		{"", ""},
		{"-ai-c", ""},
	}

	for _, test := range tests {
		if got := BaseProjectName(test.name); got != test.expected {
			t.Errorf("BaseProjectName(%q) = %q, expected %q", test.name, got, test.expected)
		}
	}
}

func TestBaseProjectNameStable(t *testing.T) {
	// Stripping a re-appended suffix always returns to the same base
	for _, name := range []string{"pr92no", "pr92no-ai-c", "alpha", "x"} {
		base := BaseProjectName(name)
		for _, suffix := range []string{SuffixAiC, SuffixAiHMcml} {
			assert.Equal(t, base, BaseProjectName(base+suffix))
		}
	}
}

func TestOnlyProjectGroups(t *testing.T) {
	groups := makeGroups("pr92no", "pr92no-ai-c", "pr92no-ai-h-mcml")
	filtered := OnlyProjectGroups().Apply(groups, groups)
	assert.Equal(t, []string{"pr92no"}, groupNames(filtered))

	// idempotent
	again := OnlyProjectGroups().Apply(filtered, groups)
	assert.Equal(t, filtered, again)
}

func TestOnlySuffixGroups(t *testing.T) {
	groups := makeGroups("pr92no", "pr92no-ai-c", "pr92no-ai-h-mcml", "gamma-ai-c")

	assert.Equal(t,
		[]string{"pr92no-ai-c", "gamma-ai-c"},
		groupNames(OnlyAiCGroups().Apply(groups, groups)))
	assert.Equal(t,
		[]string{"pr92no-ai-h-mcml"},
		groupNames(OnlyAiHMcmlGroups().Apply(groups, groups)))
}

func TestCompanionFilters(t *testing.T) {
	universe := makeGroups("alpha", "alpha-ai-c", "alpha-ai-h-mcml", "beta", "beta-ai-c")

	assert.Equal(t,
		[]string{"alpha", "beta"},
		groupNames(WithAiCCompanion().Apply(universe, universe)))
	assert.Equal(t,
		[]string{"alpha"},
		groupNames(WithAiHMcmlCompanion().Apply(universe, universe)))
	assert.Equal(t,
		[]string{"beta"},
		groupNames(WithAiCButWithoutAiHMcml().Apply(universe, universe)))
}

func TestCompanionLookupUsesUniverse(t *testing.T) {
	universe := makeGroups("alpha", "alpha-ai-c", "beta")
	// Candidates no longer contain the companion, the universe still does
	candidates := makeGroups("alpha", "beta")

	filtered := WithAiCCompanion().Apply(candidates, universe)
	assert.Equal(t, []string{"alpha"}, groupNames(filtered))
}

func TestComposeGroupFilters(t *testing.T) {
	universe := makeGroups("alpha", "alpha-ai-c", "alpha-ai-h-mcml", "beta", "beta-ai-c", "gamma")

	chain := ComposeGroupFilters(OnlyProjectGroups(), WithAiCCompanion())
	assert.Equal(t, []string{"alpha", "beta"}, groupNames(chain.Apply(universe, universe)))

	// A chain that filters companions out first must still see them during
	// the companion lookup
	chain = ComposeGroupFilters(OnlyProjectGroups(), WithAiCButWithoutAiHMcml())
	assert.Equal(t, []string{"beta"}, groupNames(chain.Apply(universe, universe)))
}

func TestGroupIndex(t *testing.T) {
	index := GroupIndex(makeGroups("alpha", "alpha-ai-c", "beta"))

	assert.True(t, index["alpha"]["alpha"])
	assert.True(t, index["alpha"]["alpha-ai-c"])
	assert.False(t, index["alpha"]["alpha-ai-h-mcml"])
	assert.True(t, index["beta"]["beta"])
}
