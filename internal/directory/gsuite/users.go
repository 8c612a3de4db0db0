package gsuite

import (
	"context"
	"fmt"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/sim-tools/simapps/internal/common"
	"github.com/sim-tools/simapps/internal/models"
)

// GetUser fetches the enrichment record for one person.
func (c *gsuiteClient) GetUser(ctx context.Context, personID string) (*models.User, error) {
	resp, err := c.adminService.Users.Get(personID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", personID, err)
	}

	user := models.User{
		PersonID: resp.Id,
		Emails:   userEmails(resp),
	}
	if resp.Name != nil {
		user.DisplayName = resp.Name.FullName
		user.FirstName = resp.Name.GivenName
		user.LastName = resp.Name.FamilyName
	}

	return &user, nil
}

// userEmails flattens the directory's loosely typed email list, keeping the
// primary address first.
func userEmails(user *admin.User) []string {
	emails := common.FilterEmpty(user.PrimaryEmail)

	entries, ok := user.Emails.([]any)
	if !ok {
		return emails
	}
	for _, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if address, ok := record["address"].(string); ok && len(address) > 0 {
			emails = common.AppendUnique(emails, address)
		}
	}
	return emails
}
