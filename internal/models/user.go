package models

import "fmt"

// User is the enrichment record for one person, fetched once per distinct
// person id independent of group context.
type User struct {
	PersonID    string   `json:"person_id"`
	DisplayName string   `json:"display_name,omitempty"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Emails      []string `json:"emails,omitempty"`
}

// UserFromRaw normalizes a raw user payload.
func UserFromRaw(raw map[string]any) (User, error) {
	personID, ok := rawString(raw, "personId", "person_id")
	if !ok {
		return User{}, fmt.Errorf("user payload missing personId")
	}

	displayName, _ := rawString(raw, "displayName", "display_name")
	firstName, _ := rawString(raw, "firstName", "first_name", "givenName")
	lastName, _ := rawString(raw, "lastName", "last_name", "familyName")

	return User{
		PersonID:    personID,
		DisplayName: displayName,
		FirstName:   firstName,
		LastName:    lastName,
		Emails:      rawStringSlice(raw, "emails"),
	}, nil
}
