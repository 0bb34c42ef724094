package domain

import "time"

// Party represents any participant in the recruitment hierarchy: the super agent,
// agents, clients, the super workers and their workers. Parent links form a forest
// rooted at super agents (client side) and super workers (worker side); acyclicity
// is enforced when the link is created, not re-derived per request.
type Party struct {
	PartyID       string  `json:"partyID"` // Primary Key (UUID)
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	PasswordHash  string  `json:"-"`
	Role          Role    `json:"role"`
	ParentPartyID *string `json:"parentPartyID,omitempty"` // nil for top-level roles
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
