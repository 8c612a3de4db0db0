package gsuite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sim-tools/simapps/internal/models"
)

// ListGroups fetches all groups whose email starts with the service prefix.
// The short group name used for naming-convention reasoning is the local
// part of the group address.
func (c *gsuiteClient) ListGroups(ctx context.Context, service string) ([]models.Group, error) {
	startTime := time.Now()
	defer func() {
		elapsed := time.Since(startTime)
		logrus.Debugf("Fetched GSuite groups in %s", elapsed)
	}()

	var groups []models.Group
	pageToken := ""
	for {
		call := c.adminService.Groups.List().
			Context(ctx).
			Domain(c.domain).
			Query(fmt.Sprintf("email:%s*", service)).
			MaxResults(pageSize).
			OrderBy("email")

		if len(pageToken) != 0 {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list groups: %w", err)
		}

		for _, group := range resp.Groups {
			name := group.Name
			if local, _, found := strings.Cut(group.Email, "@"); found && len(local) > 0 {
				name = local
			}
			groups = append(groups, models.Group{
				ID:          group.Id,
				Name:        name,
				DisplayName: group.Name,
			})
		}

		if len(resp.NextPageToken) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	logrus.WithFields(logrus.Fields{
		"service": service,
		"count":   len(groups),
	}).Debug("Fetched GSuite groups")

	return groups, nil
}
