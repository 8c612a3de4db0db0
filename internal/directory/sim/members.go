package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sim-tools/simapps/internal/models"
)

// ListGroupMembers fetches the membership records of one group.
func (c *simClient) ListGroupMembers(ctx context.Context, group models.Group) ([]models.Member, error) {
	records, err := c.fetchRecords(ctx, fmt.Sprintf("groups/%s/members", group.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to list members for group %s: %w", group.ID, err)
	}

	members := make([]models.Member, 0, len(records))
	for _, record := range records {
		member, err := models.MemberFromRaw(record, group.ID)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed member payload")
			continue
		}
		members = append(members, member)
	}

	logrus.WithFields(logrus.Fields{
		"group": group.Name,
		"count": len(members),
	}).Debug("Fetched SIM group members")

	return members, nil
}
