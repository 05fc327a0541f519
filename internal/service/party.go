package service

import (
	"context"
	"strings"

	"github.com/ravenshold/guildhall/api/internal/model"
)

// PartyRepository defines the interface for the ordered party list
type PartyRepository interface {
	Create(ctx context.Context, party *model.Party) error
	GetByID(ctx context.Context, id string) (*model.Party, error)
	ListOrdered(ctx context.Context) ([]*model.Party, error)
	Rename(ctx context.Context, id, name string) error
	ApplyOrderChanges(ctx context.Context, changes []model.OrderChange) error
	DeleteWithOrderChanges(ctx context.Context, id string, changes []model.OrderChange) error
}

// PartyService is the sequencer for the ordered party set. It owns the
// dense 1..N ordering invariant: every order mutation is planned against a
// materialized snapshot of the list and committed as one atomic batch, so
// duplicate or missing positions are never observable.
type PartyService struct {
	repo PartyRepository
	feed *Feed
}

// NewPartyService creates a new party service
func NewPartyService(repo PartyRepository, feed *Feed) *PartyService {
	return &PartyService{repo: repo, feed: feed}
}

// AddParty appends a party at the end of the sequence. An empty name
// defaults to "Party {n}".
func (s *PartyService) AddParty(ctx context.Context, req model.CreatePartyRequest) (*model.Party, error) {
	party := &model.Party{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}

	s.feed.Publish(CollectionParties)
	return party, nil
}

// GetParty retrieves a party by ID
func (s *PartyService) GetParty(ctx context.Context, id string) (*model.Party, error) {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, ErrPartyNotFound
	}
	return party, nil
}

// ListParties retrieves all parties in sequence order
func (s *PartyService) ListParties(ctx context.Context) ([]*model.Party, error) {
	return s.repo.ListOrdered(ctx)
}

// RenameParty updates a party's display name only
func (s *PartyService) RenameParty(ctx context.Context, id, name string) error {
	party, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if party == nil {
		return ErrPartyNotFound
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		return err
	}

	s.feed.Publish(CollectionParties)
	return nil
}

// Reorder moves a party to a target position, shifting the parties
// between its old and new slots by one in the opposite direction.
// Out-of-range targets are clamped into [1, N]. Moving a party onto its
// current position is absorbed: success, zero writes.
func (s *PartyService) Reorder(ctx context.Context, id string, targetOrder int) error {
	parties, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return err
	}

	changes, err := planReorder(parties, id, targetOrder)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	if err := s.repo.ApplyOrderChanges(ctx, changes); err != nil {
		return err
	}

	s.feed.Publish(CollectionParties)
	return nil
}

// RemoveParty deletes a party and closes the gap it leaves, decrementing
// every higher position by one in the same atomic batch as the delete.
// Callers (the assignment coordinator) evacuate members first.
func (s *PartyService) RemoveParty(ctx context.Context, id string) error {
	parties, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return err
	}

	changes, err := planRemoval(parties, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWithOrderChanges(ctx, id, changes); err != nil {
		return err
	}

	s.feed.Publish(CollectionParties)
	return nil
}

// planReorder computes the order changes that move one party to the
// target position. Rather than shifting ranges in place, the list is
// materialized, the party extracted and spliced back in at the target
// index, and positions rewritten 1..N; only rows whose position changed
// are emitted, each carrying its previous position.
func planReorder(parties []*model.Party, id string, targetOrder int) ([]model.OrderChange, error) {
	idx := -1
	for i, p := range parties {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrPartyNotFound
	}

	targetOrder = clampOrder(targetOrder, len(parties))
	if parties[idx].SortOrder == targetOrder {
		return nil, nil
	}

	reordered := make([]*model.Party, 0, len(parties))
	reordered = append(reordered, parties[:idx]...)
	reordered = append(reordered, parties[idx+1:]...)

	at := targetOrder - 1
	reordered = append(reordered[:at], append([]*model.Party{parties[idx]}, reordered[at:]...)...)

	return renumber(reordered), nil
}

// planRemoval computes the compaction changes for deleting one party:
// every party ordered after it moves down a slot, restoring density at
// 1..N-1.
func planRemoval(parties []*model.Party, id string) ([]model.OrderChange, error) {
	idx := -1
	for i, p := range parties {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrPartyNotFound
	}

	remaining := make([]*model.Party, 0, len(parties)-1)
	remaining = append(remaining, parties[:idx]...)
	remaining = append(remaining, parties[idx+1:]...)

	return renumber(remaining), nil
}

// renumber assigns dense positions 1..N to an ordered list and returns a
// change row for every party whose position moved.
func renumber(parties []*model.Party) []model.OrderChange {
	changes := make([]model.OrderChange, 0, len(parties))
	for i, p := range parties {
		order := i + 1
		if p.SortOrder == order {
			continue
		}
		changes = append(changes, model.OrderChange{
			PartyID:       p.ID,
			SortOrder:     order,
			PrevSortOrder: p.SortOrder,
		})
	}
	return changes
}

func clampOrder(order, n int) int {
	if order < 1 {
		return 1
	}
	if order > n {
		return n
	}
	return order
}
