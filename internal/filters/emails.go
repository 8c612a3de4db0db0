package filters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sim-tools/simapps/internal/common"
	"github.com/sim-tools/simapps/internal/models"
)

const (
	localScoreWeight  = 0.7
	domainScoreWeight = 0.3

	// Domain affinity: exact match against a hinted domain outranks a mere
	// institution substring appearing in the domain.
	domainHintScore   = 1.0
	institutionScore  = 0.75
	reasonNoCandidate = "no candidates"
)

// SelectBestEmail picks the most plausible address for a member, optionally
// informed by the enriched user record. institution and domainHint steer the
// domain affinity score and must stay fixed across one pipeline run.
func SelectBestEmail(member models.Member, user *models.User, institution, domainHint string) models.EmailSelection {
	candidates := candidateEmails(member, user)
	if len(candidates) == 0 {
		return models.EmailSelection{Reason: reasonNoCandidate}
	}

	expectedLocal := expectedLocalPart(member, user)

	type scored struct {
		score  float64
		email  string
		detail string
	}
	scores := make([]scored, 0, len(candidates))
	for _, email := range candidates {
		local, domain := common.SplitEmail(email)
		local = common.Fold(local)
		domain = common.Fold(domain)

		localScore := 0.0
		if expectedLocal != "" {
			localScore = Ratio(local, expectedLocal)
		}

		domainScore := 0.0
		switch {
		case domainHint != "":
			if domain == common.Fold(domainHint) {
				domainScore = domainHintScore
			}
		case institution != "":
			if common.ContainsInsensitive(domain, institution) {
				domainScore = institutionScore
			}
		}

		total := localScoreWeight*localScore + domainScoreWeight*domainScore
		scores = append(scores, scored{
			score:  total,
			email:  email,
			detail: fmt.Sprintf("local=%.2f,domain=%.2f", localScore, domainScore),
		})
	}

	// Highest score wins; equal scores resolve to the lexicographically
	// greatest address so repeated runs pick the same candidate.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score < scores[j].score
		}
		return scores[i].email < scores[j].email
	})
	best := scores[len(scores)-1]

	return models.EmailSelection{
		SelectedEmail: best.email,
		Reason:        fmt.Sprintf("score=%.2f (%s)", best.score, best.detail),
		Candidates:    candidates,
	}
}

// candidateEmails unions the member's addresses, the user's addresses and
// the member's primary address, first seen wins, member list first.
func candidateEmails(member models.Member, user *models.User) []string {
	var userEmails []string
	if user != nil {
		userEmails = user.Emails
	}

	var candidates []string
	for _, collection := range [][]string{member.Emails, userEmails} {
		for _, email := range collection {
			trimmed := strings.TrimSpace(email)
			if trimmed == "" {
				continue
			}
			candidates = common.AppendUnique(candidates, trimmed)
		}
	}
	if member.PrimaryEmail != "" {
		candidates = common.AppendUnique(candidates, member.PrimaryEmail)
	}
	return candidates
}

// expectedLocalPart derives the local part a name-conventional address would
// have: first.last from the enriched user when both names are known, else
// the first and last tokens of a display name, member record first. Empty
// result disables local-part scoring.
func expectedLocalPart(member models.Member, user *models.User) string {
	if user != nil && user.FirstName != "" && user.LastName != "" {
		return common.Fold(user.FirstName) + "." + common.Fold(user.LastName)
	}
	if local := localFromDisplayName(member.DisplayName); local != "" {
		return local
	}
	if user != nil {
		return localFromDisplayName(user.DisplayName)
	}
	return ""
}

func localFromDisplayName(displayName string) string {
	if displayName == "" {
		return ""
	}
	// Hyphenated names split like whitespace
	tokens := strings.Fields(strings.ReplaceAll(common.Fold(displayName), "-", " "))
	if len(tokens) < 2 {
		return ""
	}
	return tokens[0] + "." + tokens[len(tokens)-1]
}
