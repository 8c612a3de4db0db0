package sim

import (
	"context"
	"fmt"

	"github.com/sim-tools/simapps/internal/models"
)

// GetUser fetches the enrichment record for one person.
func (c *simClient) GetUser(ctx context.Context, personID string) (*models.User, error) {
	record, err := c.fetchRecord(ctx, fmt.Sprintf("users/%s", personID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", personID, err)
	}

	user, err := models.UserFromRaw(record)
	if err != nil {
		return nil, fmt.Errorf("malformed user payload for %s: %w", personID, err)
	}
	return &user, nil
}
