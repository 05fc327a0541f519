package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
)

// MemberRepository defines the interface for roster storage
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	List(ctx context.Context) ([]*model.Member, error)
	ListByParty(ctx context.Context, partyID string) ([]*model.Member, error)
	ListUnassigned(ctx context.Context) ([]*model.Member, error)
	SetParty(ctx context.Context, id string, partyID *string) error
	ClearParty(ctx context.Context, partyID string) error
	Delete(ctx context.Context, id string) error
}

// RosterService owns the authoritative member list and its party
// assignments. Name uniqueness is exact and case-sensitive; the
// check-then-insert runs transactionally in the repository.
type RosterService struct {
	repo MemberRepository
	feed *Feed
}

// NewRosterService creates a new roster service
func NewRosterService(repo MemberRepository, feed *Feed) *RosterService {
	return &RosterService{repo: repo, feed: feed}
}

// AddMember registers a member into the unassigned pool
func (s *RosterService) AddMember(ctx context.Context, req model.CreateMemberRequest) (*model.Member, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMemberNameRequired
	}
	if len(name) > model.MaxMemberNameLength {
		return nil, ErrMemberNameTooLong
	}
	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	member := &model.Member{
		Name: name,
		Role: req.Role,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateMemberName
		}
		return nil, err
	}

	s.feed.Publish(CollectionMembers)
	return member, nil
}

// GetMember retrieves a member by ID
func (s *RosterService) GetMember(ctx context.Context, id string) (*model.Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// ListMembers retrieves the full roster
func (s *RosterService) ListMembers(ctx context.Context) ([]*model.Member, error) {
	return s.repo.List(ctx)
}

// RemoveMember deletes a member unconditionally. Parties are untouched:
// their member lists are computed by filtering the roster.
func (s *RosterService) RemoveMember(ctx context.Context, id string) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.feed.Publish(CollectionMembers)
	return nil
}

// SetMemberParty updates a member's assignment. Target validation against
// the sequencer is the coordinator's job; this is the raw single-field
// update.
func (s *RosterService) SetMemberParty(ctx context.Context, id string, partyID *string) error {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	if err := s.repo.SetParty(ctx, id, partyID); err != nil {
		return err
	}

	s.feed.Publish(CollectionMembers)
	return nil
}
