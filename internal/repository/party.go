package repository

import (
	"context"
	"errors"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
)

// PartyRepository handles the ordered party list. All order mutations are
// applied as atomic batches: the dense 1..N sequence must never be
// observable in a partially shifted state.
type PartyRepository struct {
	db database.Database
}

// NewPartyRepository creates a new party repository
func NewPartyRepository(db database.Database) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create appends a party at the end of the sequence. The next position is
// resolved server-side in the same transaction as the insert, so two
// concurrent appends cannot claim the same slot. An empty name defaults to
// "Party {n}".
func (r *PartyRepository) Create(ctx context.Context, party *model.Party) error {
	query := `
		BEGIN TRANSACTION;
		LET $next = ((SELECT VALUE sort_order FROM party ORDER BY sort_order DESC LIMIT 1)[0] ?? 0) + 1;
		CREATE party CONTENT {
			name: IF $name != '' THEN $name ELSE 'Party ' + <string>$next END,
			sort_order: $next,
			prev_sort_order: $next
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{"name": party.Name}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records := unwrapMany(results)
	if len(records) == 0 {
		return database.ErrQuery
	}

	created, err := parsePartyRecord(records[len(records)-1])
	if err != nil {
		return err
	}

	party.ID = created.ID
	party.Name = created.Name
	party.SortOrder = created.SortOrder
	party.PrevSortOrder = created.PrevSortOrder
	return nil
}

// GetByID retrieves a party by ID. Returns (nil, nil) when absent.
func (r *PartyRepository) GetByID(ctx context.Context, id string) (*model.Party, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapOne(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parsePartyRecord(data)
}

// ListOrdered retrieves all parties in sequence order
func (r *PartyRepository) ListOrdered(ctx context.Context) ([]*model.Party, error) {
	query := `SELECT * FROM party ORDER BY sort_order ASC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := unwrapMany(results)
	parties := make([]*model.Party, 0, len(records))
	for _, record := range records {
		party, err := parsePartyRecord(record)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, nil
}

// Rename updates a party's display name. Never touches order.
func (r *PartyRepository) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE type::record($id) SET name = $name`
	vars := map[string]interface{}{
		"id":   id,
		"name": name,
	}
	return r.db.Execute(ctx, query, vars)
}

// ApplyOrderChanges commits a reorder plan as one atomic batch. Each
// change writes both the new order and the order the party held before it.
func (r *PartyRepository) ApplyOrderChanges(ctx context.Context, changes []model.OrderChange) error {
	if len(changes) == 0 {
		return nil
	}

	batch := database.NewAtomicBatch()
	for _, change := range changes {
		batch.Add(orderChangeQuery, map[string]interface{}{
			"id":              change.PartyID,
			"sort_order":      change.SortOrder,
			"prev_sort_order": change.PrevSortOrder,
		})
	}
	return batch.Execute(ctx, r.db)
}

// DeleteWithOrderChanges removes a party and applies the compaction plan
// for the higher-ordered parties in the same atomic batch, restoring a
// dense 1..N-1 sequence. Callers must have evacuated the party's members
// first.
func (r *PartyRepository) DeleteWithOrderChanges(ctx context.Context, id string, changes []model.OrderChange) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE type::record($id)`, map[string]interface{}{"id": id})
	for _, change := range changes {
		batch.Add(orderChangeQuery, map[string]interface{}{
			"id":              change.PartyID,
			"sort_order":      change.SortOrder,
			"prev_sort_order": change.PrevSortOrder,
		})
	}
	return batch.Execute(ctx, r.db)
}

const orderChangeQuery = `UPDATE type::record($id) SET sort_order = $sort_order, prev_sort_order = $prev_sort_order`

func parsePartyRecord(data map[string]interface{}) (*model.Party, error) {
	var party model.Party
	if err := decodeRecord(data, &party); err != nil {
		return nil, err
	}
	return &party, nil
}
