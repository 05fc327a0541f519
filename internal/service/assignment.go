package service

import (
	"context"
	"sort"

	"github.com/ravenshold/guildhall/api/internal/model"
)

// AssignmentService coordinates the roster and the party sequence. It is
// the only place member assignments and party lifecycle meet: moves are
// validated against the live party list, and party deletion evacuates the
// party's members before the sequencer removes it. It holds no state of
// its own; every view is computed from current reads.
type AssignmentService struct {
	members MemberRepository
	parties *PartyService
	feed    *Feed
}

// NewAssignmentService creates a new assignment coordinator
func NewAssignmentService(members MemberRepository, parties *PartyService, feed *Feed) *AssignmentService {
	return &AssignmentService{members: members, parties: parties, feed: feed}
}

// MoveMember assigns a member to a party, or unassigns them when partyID
// is nil. The target party must exist at the time of the move.
func (s *AssignmentService) MoveMember(ctx context.Context, memberID string, partyID *string) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	if partyID != nil {
		if _, err := s.parties.GetParty(ctx, *partyID); err != nil {
			return err
		}
	}

	if err := s.members.SetParty(ctx, memberID, partyID); err != nil {
		return err
	}

	s.feed.Publish(CollectionMembers)
	return nil
}

// DeleteParty removes a party and everything hanging off it: members
// assigned to the party are moved to the unassigned pool first, then the
// sequencer deletes the party and compacts the order. Members are never
// deleted, and a failure between the two steps leaves evacuated members
// unassigned with the party intact, which a retry resolves.
func (s *AssignmentService) DeleteParty(ctx context.Context, partyID string) error {
	if _, err := s.parties.GetParty(ctx, partyID); err != nil {
		return err
	}

	if err := s.members.ClearParty(ctx, partyID); err != nil {
		return err
	}
	s.feed.Publish(CollectionMembers)

	return s.parties.RemoveParty(ctx, partyID)
}

// MembersByParty retrieves the members assigned to one party
func (s *AssignmentService) MembersByParty(ctx context.Context, partyID string) ([]*model.Member, error) {
	if _, err := s.parties.GetParty(ctx, partyID); err != nil {
		return nil, err
	}
	members, err := s.members.ListByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	SortByRolePriority(members)
	return members, nil
}

// UnassignedMembers retrieves the members not assigned to any party
func (s *AssignmentService) UnassignedMembers(ctx context.Context) ([]*model.Member, error) {
	members, err := s.members.ListUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	SortByRolePriority(members)
	return members, nil
}

// Overview builds the full composition view: every party in sequence
// order with its members and role tally, the unassigned pool, and the
// guild-wide tally.
func (s *AssignmentService) Overview(ctx context.Context) (*model.RosterOverview, error) {
	parties, err := s.parties.ListParties(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}

	byParty := make(map[string][]*model.Member)
	var unassigned []*model.Member
	overview := &model.RosterOverview{}

	for _, m := range members {
		tallyRole(&overview.Tally, m.Role)
		if m.PartyID == nil {
			unassigned = append(unassigned, m)
			continue
		}
		byParty[*m.PartyID] = append(byParty[*m.PartyID], m)
	}

	overview.Parties = make([]model.PartyView, 0, len(parties))
	for _, p := range parties {
		view := model.PartyView{Party: *p, Members: byParty[p.ID]}
		if view.Members == nil {
			view.Members = []*model.Member{}
		}
		SortByRolePriority(view.Members)
		for _, m := range view.Members {
			tallyRole(&view.Tally, m.Role)
		}
		overview.Parties = append(overview.Parties, view)
	}

	SortByRolePriority(unassigned)
	if unassigned == nil {
		unassigned = []*model.Member{}
	}
	overview.Unassigned = unassigned

	return overview, nil
}

// RoleTally counts members per role across the whole roster
func (s *AssignmentService) RoleTally(ctx context.Context) (*model.RoleTally, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}

	tally := &model.RoleTally{}
	for _, m := range members {
		tallyRole(tally, m.Role)
	}
	return tally, nil
}

// SortByRolePriority orders members tank first, then healers, then dps,
// alphabetically within a role. The sort is stable so equal members keep
// their incoming order.
func SortByRolePriority(members []*model.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		pi, pj := members[i].Role.Priority(), members[j].Role.Priority()
		if pi != pj {
			return pi < pj
		}
		return members[i].Name < members[j].Name
	})
}

func tallyRole(t *model.RoleTally, role model.Role) {
	switch role {
	case model.RoleTank:
		t.Tank++
	case model.RoleHealer:
		t.Healer++
	case model.RoleDPS:
		t.DPS++
	}
}
