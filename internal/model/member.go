package model

import "time"

// Role is a member's combat role. The set is closed; roles are immutable
// after registration.
type Role string

const (
	RoleTank   Role = "tank"
	RoleDPS    Role = "dps"
	RoleHealer Role = "healer"
)

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleTank, RoleDPS, RoleHealer:
		return true
	default:
		return false
	}
}

// Priority returns the display ordering weight for a role: tank before
// healer before dps, anything unknown last. Used only for grouping members
// inside a party card, never persisted.
func (r Role) Priority() int {
	switch r {
	case RoleTank:
		return 1
	case RoleHealer:
		return 2
	case RoleDPS:
		return 3
	default:
		return 4
	}
}

// Member represents a registered character on the roster.
// PartyID is nil while the member sits in the unassigned pool; when set it
// must reference an existing party.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	PartyID   *string   `json:"party_id"`
	CreatedOn time.Time `json:"created_on"`
}

// Assigned returns true if the member belongs to a party
func (m *Member) Assigned() bool {
	return m.PartyID != nil
}

// RoleTally counts members per role
type RoleTally struct {
	Tank   int `json:"tank"`
	Healer int `json:"healer"`
	DPS    int `json:"dps"`
}

// Total returns the tallied member count
func (t RoleTally) Total() int {
	return t.Tank + t.Healer + t.DPS
}

// Business constraints. PartySize is advisory: the presentation layer
// renders a party as "full" past it, the core never enforces it.
const (
	PartySize           = 5
	MaxMemberNameLength = 50
)

// CreateMemberRequest represents a request to register a member
type CreateMemberRequest struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// MoveMemberRequest represents a request to move a member between parties.
// A nil PartyID moves the member to the unassigned pool.
type MoveMemberRequest struct {
	PartyID *string `json:"party_id"`
}
