package models

import "fmt"

// Group is a directory group. Name is the unit of naming-convention
// reasoning; ID is the identity used when loading members.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

func (g Group) GetID() string {
	return g.ID
}

func (g Group) GetName() string {
	return g.Name
}

// GroupFromRaw normalizes a raw group payload. The id field is required;
// name falls back to groupName and finally to the id itself.
func GroupFromRaw(raw map[string]any) (Group, error) {
	id, ok := rawString(raw, "id")
	if !ok {
		return Group{}, fmt.Errorf("group payload missing id")
	}

	name, ok := rawString(raw, "name", "groupName")
	if !ok {
		name = id
	}

	displayName, _ := rawString(raw, "displayName")

	return Group{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
	}, nil
}
