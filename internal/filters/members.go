package filters

import (
	"fmt"
	"strings"

	"github.com/sim-tools/simapps/internal/models"
)

// DedupStrategy selects how member records are collapsed to one per person.
type DedupStrategy string

const (
	DedupNone           DedupStrategy = "none"
	DedupByID           DedupStrategy = "by-id"
	DedupByPrimaryEmail DedupStrategy = "by-primary-email"
	DedupByBestEmail    DedupStrategy = "by-best-email"
)

// EmailSelector scores a member's candidate addresses and picks one. The
// deduplication engine invokes it without enrichment data; the pipeline
// binds institution and domain hints into it.
type EmailSelector func(member models.Member) models.EmailSelection

// MemberFilter reduces an ordered member list, preserving first-seen order.
type MemberFilter func(members []models.Member) ([]models.Member, error)

// ParseDedupStrategy validates a strategy tag. Unknown tags are a
// configuration error, reported before any members flow through a filter.
func ParseDedupStrategy(value string) (DedupStrategy, error) {
	switch strategy := DedupStrategy(strings.ToLower(value)); strategy {
	case DedupNone, DedupByID, DedupByPrimaryEmail, DedupByBestEmail:
		return strategy, nil
	default:
		return "", fmt.Errorf("unsupported deduplication strategy: %s", value)
	}
}

// DeduplicateMembers returns a filter that keeps the first member seen per
// dedup key. Members with an empty key are retained unconditionally; empty
// keys never collide with each other. The selector is only consulted for
// the by-best-email strategy and its absence is reported at first use.
func DeduplicateMembers(strategy DedupStrategy, selector EmailSelector) (MemberFilter, error) {
	if _, err := ParseDedupStrategy(string(strategy)); err != nil {
		return nil, err
	}

	return func(members []models.Member) ([]models.Member, error) {
		if strategy == DedupNone {
			return append([]models.Member(nil), members...), nil
		}

		seen := make(map[string]bool, len(members))
		result := make([]models.Member, 0, len(members))
		for _, member := range members {
			var key string
			switch strategy {
			case DedupByID:
				key = member.PersonID
			case DedupByPrimaryEmail:
				key = strings.ToLower(member.PrimaryEmail)
			case DedupByBestEmail:
				if selector == nil {
					return nil, fmt.Errorf("email selector required for %s deduplication", DedupByBestEmail)
				}
				selection := selector(member)
				key = selection.SelectedEmail
				if key == "" {
					key = member.PersonID
				}
			}
			if seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			result = append(result, member)
		}
		return result, nil
	}, nil
}
