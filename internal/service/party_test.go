package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenshold/guildhall/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockPartyRepo struct {
	createFunc                 func(ctx context.Context, party *model.Party) error
	getByIDFunc                func(ctx context.Context, id string) (*model.Party, error)
	listOrderedFunc            func(ctx context.Context) ([]*model.Party, error)
	renameFunc                 func(ctx context.Context, id, name string) error
	applyOrderChangesFunc      func(ctx context.Context, changes []model.OrderChange) error
	deleteWithOrderChangesFunc func(ctx context.Context, id string, changes []model.OrderChange) error
}

func (m *mockPartyRepo) Create(ctx context.Context, party *model.Party) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, party)
	}
	return nil
}

func (m *mockPartyRepo) GetByID(ctx context.Context, id string) (*model.Party, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPartyRepo) ListOrdered(ctx context.Context) ([]*model.Party, error) {
	if m.listOrderedFunc != nil {
		return m.listOrderedFunc(ctx)
	}
	return nil, nil
}

func (m *mockPartyRepo) Rename(ctx context.Context, id, name string) error {
	if m.renameFunc != nil {
		return m.renameFunc(ctx, id, name)
	}
	return nil
}

func (m *mockPartyRepo) ApplyOrderChanges(ctx context.Context, changes []model.OrderChange) error {
	if m.applyOrderChangesFunc != nil {
		return m.applyOrderChangesFunc(ctx, changes)
	}
	return nil
}

func (m *mockPartyRepo) DeleteWithOrderChanges(ctx context.Context, id string, changes []model.OrderChange) error {
	if m.deleteWithOrderChangesFunc != nil {
		return m.deleteWithOrderChangesFunc(ctx, id, changes)
	}
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func orderedParties(n int) []*model.Party {
	parties := make([]*model.Party, n)
	for i := range parties {
		parties[i] = &model.Party{
			ID:        "party:" + string(rune('a'+i)),
			Name:      "Party " + string(rune('1'+i)),
			SortOrder: i + 1,
		}
	}
	return parties
}

// applyChanges plays a change set back onto a party list and returns the
// resulting id sequence in position order, so tests can assert on the
// final layout rather than on individual rows.
func applyChanges(parties []*model.Party, changes []model.OrderChange, deleted string) []string {
	orders := make(map[string]int, len(parties))
	for _, p := range parties {
		if p.ID == deleted {
			continue
		}
		orders[p.ID] = p.SortOrder
	}
	for _, c := range changes {
		orders[c.PartyID] = c.SortOrder
	}

	ids := make([]string, len(orders))
	for id, order := range orders {
		ids[order-1] = id
	}
	return ids
}

// partiesFromLayout rebuilds an ordered party list from an id sequence,
// assigning dense positions 1..N.
func partiesFromLayout(ids []string) []*model.Party {
	parties := make([]*model.Party, len(ids))
	for i, id := range ids {
		parties[i] = &model.Party{ID: id, SortOrder: i + 1}
	}
	return parties
}

// ============================================================================
// planReorder Tests
// ============================================================================

func TestPlanReorder_MoveForward_ShiftsIntermediateBack(t *testing.T) {
	t.Parallel()
	parties := orderedParties(5)

	changes, err := planReorder(parties, "party:b", 4)
	require.NoError(t, err)

	// b moves 2 -> 4; c and d slide down one; a and e untouched.
	assert.Len(t, changes, 3)
	assert.Equal(t, []string{"party:a", "party:c", "party:d", "party:b", "party:e"},
		applyChanges(parties, changes, ""))
}

func TestPlanReorder_MoveBackward_ShiftsIntermediateForward(t *testing.T) {
	t.Parallel()
	parties := orderedParties(5)

	changes, err := planReorder(parties, "party:d", 2)
	require.NoError(t, err)

	assert.Len(t, changes, 3)
	assert.Equal(t, []string{"party:a", "party:d", "party:b", "party:c", "party:e"},
		applyChanges(parties, changes, ""))
}

func TestPlanReorder_PreservesDensity(t *testing.T) {
	t.Parallel()
	parties := orderedParties(6)

	for target := -2; target <= 9; target++ {
		changes, err := planReorder(parties, "party:c", target)
		require.NoError(t, err)

		orders := make(map[string]int, len(parties))
		for _, p := range parties {
			orders[p.ID] = p.SortOrder
		}
		for _, c := range changes {
			assert.Equal(t, orders[c.PartyID], c.PrevSortOrder,
				"previous order must match the pre-move position")
			orders[c.PartyID] = c.SortOrder
		}

		seen := make(map[int]bool, len(orders))
		for _, order := range orders {
			assert.False(t, seen[order], "duplicate position %d for target %d", order, target)
			assert.GreaterOrEqual(t, order, 1)
			assert.LessOrEqual(t, order, len(parties))
			seen[order] = true
		}
	}
}

func TestPlanReorder_RoundTripRestoresOriginalOrder(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		baseline := applyChanges(orderedParties(n), nil, "")

		for from := 1; from <= n; from++ {
			for target := 1; target <= n; target++ {
				id := baseline[from-1]

				there, err := planReorder(orderedParties(n), id, target)
				require.NoError(t, err)
				moved := partiesFromLayout(applyChanges(orderedParties(n), there, ""))

				back, err := planReorder(moved, id, from)
				require.NoError(t, err)

				assert.Equal(t, baseline, applyChanges(moved, back, ""),
					"n=%d: moving %s %d->%d->%d must restore the original layout",
					n, id, from, target, from)
			}
		}
	}
}

func TestPlanReorder_TargetClampedIntoRange(t *testing.T) {
	t.Parallel()
	parties := orderedParties(4)

	changes, err := planReorder(parties, "party:b", 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"party:a", "party:c", "party:d", "party:b"},
		applyChanges(parties, changes, ""))

	changes, err = planReorder(parties, "party:c", -3)
	require.NoError(t, err)
	assert.Equal(t, []string{"party:c", "party:a", "party:b", "party:d"},
		applyChanges(parties, changes, ""))
}

func TestPlanReorder_SamePosition_NoChanges(t *testing.T) {
	t.Parallel()
	parties := orderedParties(4)

	changes, err := planReorder(parties, "party:c", 3)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPlanReorder_UnknownParty_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	parties := orderedParties(3)

	_, err := planReorder(parties, "party:zz", 1)
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

// ============================================================================
// planRemoval Tests
// ============================================================================

func TestPlanRemoval_CompactsHigherPositions(t *testing.T) {
	t.Parallel()
	parties := orderedParties(5)

	changes, err := planRemoval(parties, "party:b")
	require.NoError(t, err)

	// c, d, e each move down one slot; a stays.
	assert.Len(t, changes, 3)
	assert.Equal(t, []string{"party:a", "party:c", "party:d", "party:e"},
		applyChanges(parties, changes, "party:b"))
}

func TestPlanRemoval_LastPosition_NoChanges(t *testing.T) {
	t.Parallel()
	parties := orderedParties(5)

	changes, err := planRemoval(parties, "party:e")
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPlanRemoval_UnknownParty_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	parties := orderedParties(3)

	_, err := planRemoval(parties, "party:zz")
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

// ============================================================================
// PartyService Tests
// ============================================================================

func TestPartyService_Reorder_SamePosition_NoWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	applied := false
	repo := &mockPartyRepo{
		listOrderedFunc: func(ctx context.Context) ([]*model.Party, error) {
			return orderedParties(4), nil
		},
		applyOrderChangesFunc: func(ctx context.Context, changes []model.OrderChange) error {
			applied = true
			return nil
		},
	}
	svc := NewPartyService(repo, nil)

	err := svc.Reorder(ctx, "party:b", 2)
	require.NoError(t, err)
	assert.False(t, applied, "reorder to current position must issue no writes")
}

func TestPartyService_Reorder_AppliesPlannedChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var applied []model.OrderChange
	repo := &mockPartyRepo{
		listOrderedFunc: func(ctx context.Context) ([]*model.Party, error) {
			return orderedParties(3), nil
		},
		applyOrderChangesFunc: func(ctx context.Context, changes []model.OrderChange) error {
			applied = changes
			return nil
		},
	}
	svc := NewPartyService(repo, nil)

	err := svc.Reorder(ctx, "party:a", 3)
	require.NoError(t, err)
	require.Len(t, applied, 3)
	assert.Equal(t, model.OrderChange{PartyID: "party:b", SortOrder: 1, PrevSortOrder: 2}, applied[0])
	assert.Equal(t, model.OrderChange{PartyID: "party:c", SortOrder: 2, PrevSortOrder: 3}, applied[1])
	assert.Equal(t, model.OrderChange{PartyID: "party:a", SortOrder: 3, PrevSortOrder: 1}, applied[2])
}

func TestPartyService_RemoveParty_DeletesAndCompactsTogether(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var deletedID string
	var deletedChanges []model.OrderChange
	repo := &mockPartyRepo{
		listOrderedFunc: func(ctx context.Context) ([]*model.Party, error) {
			return orderedParties(4), nil
		},
		deleteWithOrderChangesFunc: func(ctx context.Context, id string, changes []model.OrderChange) error {
			deletedID = id
			deletedChanges = changes
			return nil
		},
	}
	svc := NewPartyService(repo, nil)

	err := svc.RemoveParty(ctx, "party:a")
	require.NoError(t, err)
	assert.Equal(t, "party:a", deletedID)
	assert.Len(t, deletedChanges, 3, "every higher party moves down one")
}

func TestPartyService_RemoveParty_Unknown_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &mockPartyRepo{
		listOrderedFunc: func(ctx context.Context) ([]*model.Party, error) {
			return orderedParties(2), nil
		},
	}
	svc := NewPartyService(repo, nil)

	err := svc.RemoveParty(ctx, "party:zz")
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

func TestPartyService_RenameParty_Unknown_ReturnsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewPartyService(&mockPartyRepo{}, nil)

	err := svc.RenameParty(ctx, "party:zz", "Mythic Roster")
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

func TestPartyService_RenameParty_DoesNotTouchOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	applied := false
	renamed := ""
	repo := &mockPartyRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Party, error) {
			return &model.Party{ID: id, Name: "Party 2", SortOrder: 2}, nil
		},
		renameFunc: func(ctx context.Context, id, name string) error {
			renamed = name
			return nil
		},
		applyOrderChangesFunc: func(ctx context.Context, changes []model.OrderChange) error {
			applied = true
			return nil
		},
	}
	svc := NewPartyService(repo, nil)

	err := svc.RenameParty(ctx, "party:b", "Mythic Roster")
	require.NoError(t, err)
	assert.Equal(t, "Mythic Roster", renamed)
	assert.False(t, applied)
}

func TestPartyService_AddParty_PropagatesRepoError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repoErr := errors.New("connection lost")
	repo := &mockPartyRepo{
		createFunc: func(ctx context.Context, party *model.Party) error {
			return repoErr
		},
	}
	svc := NewPartyService(repo, nil)

	_, err := svc.AddParty(ctx, model.CreatePartyRequest{Name: "Party 9"})
	assert.ErrorIs(t, err, repoErr)
}
