package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sim-tools/simapps/internal/models"
)

// ListGroups fetches all groups for a named service scope. Malformed group
// payloads are skipped with a warning instead of failing the batch.
func (c *simClient) ListGroups(ctx context.Context, service string) ([]models.Group, error) {
	records, err := c.fetchRecords(ctx, fmt.Sprintf("services/%s/groups", service))
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for service %s: %w", service, err)
	}

	groups := make([]models.Group, 0, len(records))
	for _, record := range records {
		group, err := models.GroupFromRaw(record)
		if err != nil {
			logrus.WithError(err).Warn("Skipping malformed group payload")
			continue
		}
		groups = append(groups, group)
	}

	logrus.WithFields(logrus.Fields{
		"service": service,
		"count":   len(groups),
	}).Debug("Fetched SIM groups")

	return groups, nil
}
