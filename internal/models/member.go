package models

import "fmt"

// Member is one person's membership record in one group. The same person
// may appear in multiple groups, or more than once in the same group when
// the directory returns duplicates.
type Member struct {
	PersonID     string   `json:"person_id"`
	GroupID      string   `json:"group_id"`
	PrimaryEmail string   `json:"primary_email,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
}

// MemberFromRaw normalizes a raw membership payload for the given group.
func MemberFromRaw(raw map[string]any, groupID string) (Member, error) {
	personID, ok := rawString(raw, "personId", "person_id")
	if !ok {
		return Member{}, fmt.Errorf("member payload missing personId")
	}

	primaryEmail, _ := rawString(raw, "primaryEmail", "primary_email")
	displayName, _ := rawString(raw, "displayName", "display_name")

	return Member{
		PersonID:     personID,
		GroupID:      groupID,
		PrimaryEmail: primaryEmail,
		Emails:       rawStringSlice(raw, "emails"),
		DisplayName:  displayName,
	}, nil
}
