package gsuite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	admin "google.golang.org/api/admin/directory/v1"
)

func TestUserEmails(t *testing.T) {
	user := &admin.User{
		PrimaryEmail: "alice@institution.de",
		Emails: []any{
			map[string]any{"address": "alice@institution.de", "primary": true},
			map[string]any{"address": "alice.smith@institution.de"},
			map[string]any{"type": "work"}, // no address
			"not-a-record",
		},
	}

	assert.Equal(t,
		[]string{"alice@institution.de", "alice.smith@institution.de"},
		userEmails(user))
}

func TestUserEmailsNoList(t *testing.T) {
	user := &admin.User{PrimaryEmail: "bob@institution.de"}
	assert.Equal(t, []string{"bob@institution.de"}, userEmails(user))

	empty := &admin.User{}
	assert.Empty(t, userEmails(empty))
}
