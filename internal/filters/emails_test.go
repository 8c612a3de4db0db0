package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sim-tools/simapps/internal/models"
)

func TestSelectBestEmailPrefersNamePattern(t *testing.T) {
	member := models.Member{
		PersonID:    "1",
		GroupID:     "g",
		Emails:      []string{"random@example.com", "alice.smith@institution.de"},
		DisplayName: "Alice Smith",
	}
	user := &models.User{
		PersonID:    "1",
		FirstName:   "Alice",
		LastName:    "Smith",
		DisplayName: "Alice Smith",
		Emails:      []string{"alias@institution.de"},
	}

	selection := SelectBestEmail(member, user, "institution", "institution.de")
	assert.Equal(t, "alice.smith@institution.de", selection.SelectedEmail)
	assert.Contains(t, selection.Reason, "score=")
	assert.Equal(t,
		[]string{"random@example.com", "alice.smith@institution.de", "alias@institution.de"},
		selection.Candidates)
}

func TestSelectBestEmailNoCandidates(t *testing.T) {
	member := models.Member{PersonID: "1", GroupID: "g"}
	user := &models.User{PersonID: "1"}

	selection := SelectBestEmail(member, user, "institution", "institution.de")
	assert.Empty(t, selection.SelectedEmail)
	assert.Equal(t, "no candidates", selection.Reason)
	assert.Empty(t, selection.Candidates)
}

func TestSelectBestEmailDeterministic(t *testing.T) {
	member := models.Member{
		PersonID:    "1",
		Emails:      []string{"b@x.de", "a@x.de"},
		DisplayName: "Some Body",
	}

	first := SelectBestEmail(member, nil, "x", "")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SelectBestEmail(member, nil, "x", ""))
	}
}

func TestSelectBestEmailTieBreak(t *testing.T) {
	// Identical scores: the lexicographically greatest address wins
	member := models.Member{
		PersonID: "1",
		Emails:   []string{"aaa@example.com", "zzz@example.com"},
	}

	selection := SelectBestEmail(member, nil, "", "")
	assert.Equal(t, "zzz@example.com", selection.SelectedEmail)
}

func TestSelectBestEmailDomainAffinity(t *testing.T) {
	member := models.Member{
		PersonID: "1",
		Emails:   []string{"someone@other.org", "someone@sub.institution.de"},
	}

	t.Run("domain hint is exact", func(t *testing.T) {
		selection := SelectBestEmail(member, nil, "", "other.org")
		assert.Equal(t, "someone@other.org", selection.SelectedEmail)
		assert.Contains(t, selection.Reason, "domain=1.00")
	})

	t.Run("institution substring without hint", func(t *testing.T) {
		selection := SelectBestEmail(member, nil, "institution", "")
		assert.Equal(t, "someone@sub.institution.de", selection.SelectedEmail)
		assert.Contains(t, selection.Reason, "domain=0.75")
	})

	t.Run("hint overrides institution", func(t *testing.T) {
		selection := SelectBestEmail(member, nil, "institution", "other.org")
		assert.Equal(t, "someone@other.org", selection.SelectedEmail)
	})
}

func TestSelectBestEmailPrimaryAppendedLast(t *testing.T) {
	member := models.Member{
		PersonID:     "1",
		Emails:       []string{"first@example.com"},
		PrimaryEmail: "primary@example.com",
	}
	user := &models.User{PersonID: "1", Emails: []string{"enriched@example.com"}}

	selection := SelectBestEmail(member, user, "", "")
	assert.Equal(t,
		[]string{"first@example.com", "enriched@example.com", "primary@example.com"},
		selection.Candidates)
}

func TestSelectBestEmailFallsBackToDisplayNameTokens(t *testing.T) {
	member := models.Member{
		PersonID:    "1",
		Emails:      []string{"jean.dupont@example.com", "xyz@example.com"},
		DisplayName: "Jean-Pierre Dupont",
	}

	selection := SelectBestEmail(member, nil, "", "")
	// hyphen splits like whitespace: expected local part is jean.dupont
	assert.Equal(t, "jean.dupont@example.com", selection.SelectedEmail)
}

func TestSelectBestEmailUserDisplayNameFallback(t *testing.T) {
	member := models.Member{
		PersonID: "1",
		Emails:   []string{"maria.curie@example.com", "unrelated@example.com"},
	}
	user := &models.User{PersonID: "1", DisplayName: "Maria Curie"}

	selection := SelectBestEmail(member, user, "", "")
	assert.Equal(t, "maria.curie@example.com", selection.SelectedEmail)
}

func TestSelectBestEmailReasonFormat(t *testing.T) {
	member := models.Member{
		PersonID:    "1",
		Emails:      []string{"alice.smith@institution.de"},
		DisplayName: "Alice Smith",
	}

	selection := SelectBestEmail(member, nil, "", "institution.de")
	require.Equal(t, "alice.smith@institution.de", selection.SelectedEmail)
	// local part matches exactly and the domain hint matches:
	// 0.7*1.0 + 0.3*1.0
	assert.Equal(t, "score=1.00 (local=1.00,domain=1.00)", selection.Reason)
}
