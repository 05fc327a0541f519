package model

// Party is a named, ordered container members can be assigned to.
//
// SortOrder is 1-based and dense: across N parties the multiset of
// SortOrder values is exactly {1..N}, no gaps, no duplicates. Every
// mutation of SortOrder goes through the sequencer's planner and commits
// as a single atomic batch so the invariant holds at every quiescent
// point.
//
// PrevSortOrder holds the order a party had before its last shift. It is
// an audit/animation hint only; nothing reads it back.
type Party struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SortOrder     int    `json:"sort_order"`
	PrevSortOrder int    `json:"prev_sort_order"`
}

// OrderChange is one row of a sequencer plan: the order a party must move
// to and the order it held before. Plans are computed in memory from a
// materialized party list and applied as a single atomic batch.
type OrderChange struct {
	PartyID       string
	SortOrder     int
	PrevSortOrder int
}

// CreatePartyRequest represents a request to create a party.
// An empty name defaults to "Party {n}" where n is the appended position.
type CreatePartyRequest struct {
	Name string `json:"name"`
}

// RenamePartyRequest represents a request to rename a party
type RenamePartyRequest struct {
	Name string `json:"name"`
}

// ReorderPartyRequest represents a request to move a party to a target
// position. Out-of-range targets are clamped into [1, N].
type ReorderPartyRequest struct {
	TargetOrder int `json:"target_order"`
}

// PartyView is a party with its members resolved, for the grouped roster
// view. Members are sorted by role priority; the tally is per-party.
type PartyView struct {
	Party   Party     `json:"party"`
	Members []*Member `json:"members"`
	Tally   RoleTally `json:"tally"`
}

// RosterOverview is the full grouped state the presentation layer renders:
// parties in sequence order plus the unassigned pool.
type RosterOverview struct {
	Parties    []PartyView `json:"parties"`
	Unassigned []*Member   `json:"unassigned"`
	Tally      RoleTally   `json:"tally"`
}
