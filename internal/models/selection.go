package models

// EmailSelection is the outcome of choosing an email address for a member.
// SelectedEmail is empty only when no candidates were available; Reason
// carries the score breakdown for observability.
type EmailSelection struct {
	SelectedEmail string   `json:"selected_email,omitempty"`
	Reason        string   `json:"reason"`
	Candidates    []string `json:"candidates,omitempty"`
}
