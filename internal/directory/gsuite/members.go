package gsuite

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sim-tools/simapps/internal/models"
)

// ListGroupMembers fetches the membership of one group. The directory only
// exposes one address per membership record; richer email collections come
// from the per-user lookup.
func (c *gsuiteClient) ListGroupMembers(ctx context.Context, group models.Group) ([]models.Member, error) {
	var members []models.Member
	pageToken := ""
	for {
		call := c.adminService.Members.List(group.ID).
			Context(ctx).
			MaxResults(pageSize)

		if len(pageToken) != 0 {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list members for group %s: %w", group.ID, err)
		}

		for _, member := range resp.Members {
			record := models.Member{
				PersonID:     member.Id,
				GroupID:      group.ID,
				PrimaryEmail: member.Email,
			}
			if len(member.Email) > 0 {
				record.Emails = []string{member.Email}
			}
			members = append(members, record)
		}

		if len(resp.NextPageToken) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	logrus.WithFields(logrus.Fields{
		"group": group.Name,
		"count": len(members),
	}).Debug("Fetched GSuite group members")

	return members, nil
}
