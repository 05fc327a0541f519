package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ravenshold/guildhall/api/internal/model"
)

const (
	defaultPartyCount = 8
	defaultMemberName = "Olof"
	defaultMemberRole = model.RoleDPS
)

// SeederService initializes an empty deployment with its starting state:
// a fixed block of numbered parties and one unassigned member. Seeding is
// idempotent; a roster or party list with any rows in it is left alone.
type SeederService struct {
	members MemberRepository
	parties PartyRepository
	logger  *slog.Logger
}

// NewSeederService creates a new seeder service
func NewSeederService(members MemberRepository, parties PartyRepository, logger *slog.Logger) *SeederService {
	return &SeederService{members: members, parties: parties, logger: logger}
}

// SeedDefaults populates the party list and roster if they are empty
func (s *SeederService) SeedDefaults(ctx context.Context) error {
	if err := s.seedParties(ctx); err != nil {
		return fmt.Errorf("seeding parties: %w", err)
	}
	if err := s.seedMembers(ctx); err != nil {
		return fmt.Errorf("seeding members: %w", err)
	}
	return nil
}

func (s *SeederService) seedParties(ctx context.Context) error {
	existing, err := s.parties.ListOrdered(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := 1; i <= defaultPartyCount; i++ {
		party := &model.Party{Name: fmt.Sprintf("Party %d", i)}
		if err := s.parties.Create(ctx, party); err != nil {
			return err
		}
	}

	s.logger.Info("seeded default parties", "count", defaultPartyCount)
	return nil
}

func (s *SeederService) seedMembers(ctx context.Context) error {
	existing, err := s.members.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	member := &model.Member{Name: defaultMemberName, Role: defaultMemberRole}
	if err := s.members.Create(ctx, member); err != nil {
		return err
	}

	s.logger.Info("seeded default member", "name", defaultMemberName)
	return nil
}
