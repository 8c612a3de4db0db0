// Package filters holds the pure selection logic of the email-list tool:
// group filtering by naming convention, member deduplication and best-email
// selection. Nothing in this package performs I/O.
package filters

import (
	"fmt"
	"strings"

	"github.com/sim-tools/simapps/internal/models"
)

// Functional suffixes recognized on group names, in match priority order.
// A name carries at most one suffix; the first match wins.
const (
	SuffixAiC     = "-ai-c"
	SuffixAiHMcml = "-ai-h-mcml"
)

var functionalSuffixes = []string{SuffixAiC, SuffixAiHMcml}

// BaseProjectName strips the first matching functional suffix from a group
// name. Names without a recognized suffix are returned unchanged; those are
// the base project groups.
func BaseProjectName(name string) string {
	for _, suffix := range functionalSuffixes {
		if strings.HasSuffix(name, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// HasFunctionalSuffix reports whether name ends with the given suffix.
func HasFunctionalSuffix(name, suffix string) bool {
	return strings.HasSuffix(name, suffix)
}

// GroupIndex maps each base project name to the set of full group names
// sharing it. Companion lookups use it to test suffix existence in O(1).
func GroupIndex(groups []models.Group) map[string]map[string]bool {
	index := make(map[string]map[string]bool)
	for _, group := range groups {
		base := BaseProjectName(group.Name)
		if index[base] == nil {
			index[base] = make(map[string]bool)
		}
		index[base][group.Name] = true
	}
	return index
}

// GroupFilter narrows a candidate group list. Filters receive the original
// pre-filter universe alongside the candidates so companion lookups are not
// affected by earlier narrowing in a chain.
type GroupFilter struct {
	Name  string
	Apply func(candidates, universe []models.Group) []models.Group
}

// ComposeGroupFilters applies filters left to right. Every filter in the
// chain sees the same universe.
func ComposeGroupFilters(groupFilters ...GroupFilter) GroupFilter {
	names := make([]string, 0, len(groupFilters))
	for _, filter := range groupFilters {
		names = append(names, filter.Name)
	}
	return GroupFilter{
		Name: fmt.Sprintf("compose(%s)", strings.Join(names, ",")),
		Apply: func(candidates, universe []models.Group) []models.Group {
			current := candidates
			for _, filter := range groupFilters {
				current = filter.Apply(current, universe)
			}
			return current
		},
	}
}

// OnlyProjectGroups keeps groups whose name equals their own base name.
func OnlyProjectGroups() GroupFilter {
	return GroupFilter{
		Name: "only-project-groups",
		Apply: func(candidates, _ []models.Group) []models.Group {
			result := make([]models.Group, 0, len(candidates))
			for _, group := range candidates {
				if BaseProjectName(group.Name) == group.Name {
					result = append(result, group)
				}
			}
			return result
		},
	}
}

// OnlyAiCGroups keeps -ai-c functional groups.
func OnlyAiCGroups() GroupFilter {
	return onlySuffixGroups("only-ai-c-groups", SuffixAiC)
}

// OnlyAiHMcmlGroups keeps -ai-h-mcml functional groups.
func OnlyAiHMcmlGroups() GroupFilter {
	return onlySuffixGroups("only-ai-h-mcml-groups", SuffixAiHMcml)
}

func onlySuffixGroups(name, suffix string) GroupFilter {
	return GroupFilter{
		Name: name,
		Apply: func(candidates, _ []models.Group) []models.Group {
			result := make([]models.Group, 0, len(candidates))
			for _, group := range candidates {
				if HasFunctionalSuffix(group.Name, suffix) {
					result = append(result, group)
				}
			}
			return result
		},
	}
}

// WithAiCCompanion keeps base project groups whose -ai-c companion exists
// in the universe.
func WithAiCCompanion() GroupFilter {
	return withCompanion("with-ai-c-companion", SuffixAiC)
}

// WithAiHMcmlCompanion keeps base project groups whose -ai-h-mcml companion
// exists in the universe.
func WithAiHMcmlCompanion() GroupFilter {
	return withCompanion("with-ai-h-mcml-companion", SuffixAiHMcml)
}

func withCompanion(name, suffix string) GroupFilter {
	return GroupFilter{
		Name: name,
		Apply: func(candidates, universe []models.Group) []models.Group {
			index := GroupIndex(universe)
			result := make([]models.Group, 0, len(candidates))
			for _, group := range candidates {
				if BaseProjectName(group.Name) != group.Name {
					continue
				}
				if index[group.Name][group.Name+suffix] {
					result = append(result, group)
				}
			}
			return result
		},
	}
}

// WithAiCButWithoutAiHMcml keeps base project groups that have an -ai-c
// companion and lack an -ai-h-mcml companion.
func WithAiCButWithoutAiHMcml() GroupFilter {
	return GroupFilter{
		Name: "with-ai-c-but-without-ai-h-mcml",
		Apply: func(candidates, universe []models.Group) []models.Group {
			index := GroupIndex(universe)
			result := make([]models.Group, 0, len(candidates))
			for _, group := range candidates {
				if BaseProjectName(group.Name) != group.Name {
					continue
				}
				names := index[group.Name]
				if names[group.Name+SuffixAiC] && !names[group.Name+SuffixAiHMcml] {
					result = append(result, group)
				}
			}
			return result
		},
	}
}
