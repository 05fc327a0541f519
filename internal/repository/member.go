package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
)

// MemberRepository handles roster persistence. Members live in the
// "member" collection; the party assignment is a record link that is NONE
// while the member sits in the unassigned pool.
type MemberRepository struct {
	db database.Database
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db database.Database) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create registers a member with an unassigned party. The duplicate-name
// check and the insert run inside one transaction so two concurrent
// registrations of the same name cannot both succeed. Returns
// database.ErrDuplicate when the name is taken (exact, case-sensitive
// match).
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		BEGIN TRANSACTION;
		IF (SELECT VALUE id FROM member WHERE name = $name) != [] {
			THROW "member name already exists";
		};
		CREATE member CONTENT {
			name: $name,
			role: $role,
			party: NONE,
			created_on: time::now()
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"name": member.Name,
		"role": string(member.Role),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: member name %q already exists", database.ErrDuplicate, member.Name)
		}
		return err
	}

	records := unwrapMany(results)
	if len(records) == 0 {
		return database.ErrQuery
	}

	created, err := parseMemberRecord(records[len(records)-1])
	if err != nil {
		return err
	}

	member.ID = created.ID
	member.PartyID = created.PartyID
	member.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a member by ID. Returns (nil, nil) when absent.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseMemberResult(result)
}

// List retrieves the full roster
func (r *MemberRepository) List(ctx context.Context) ([]*model.Member, error) {
	query := `SELECT * FROM member ORDER BY name ASC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseMemberRecords(unwrapMany(results))
}

// ListByParty retrieves the members assigned to one party
func (r *MemberRepository) ListByParty(ctx context.Context, partyID string) ([]*model.Member, error) {
	query := `SELECT * FROM member WHERE party = type::record($party_id) ORDER BY name ASC`
	vars := map[string]interface{}{"party_id": partyID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseMemberRecords(unwrapMany(results))
}

// ListUnassigned retrieves the unassigned pool
func (r *MemberRepository) ListUnassigned(ctx context.Context) ([]*model.Member, error) {
	query := `SELECT * FROM member WHERE party IS NONE ORDER BY name ASC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseMemberRecords(unwrapMany(results))
}

// SetParty updates a member's party assignment. A nil partyID moves the
// member to the unassigned pool. Single-field update; never touches party
// order.
func (r *MemberRepository) SetParty(ctx context.Context, id string, partyID *string) error {
	if partyID == nil {
		query := `UPDATE type::record($id) SET party = NONE`
		return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
	}

	query := `UPDATE type::record($id) SET party = type::record($party_id)`
	vars := map[string]interface{}{
		"id":       id,
		"party_id": *partyID,
	}
	return r.db.Execute(ctx, query, vars)
}

// ClearParty unassigns every member of a party in one statement. Used to
// evacuate a party before deleting it.
func (r *MemberRepository) ClearParty(ctx context.Context, partyID string) error {
	query := `UPDATE member SET party = NONE WHERE party = type::record($party_id)`
	vars := map[string]interface{}{"party_id": partyID}
	return r.db.Execute(ctx, query, vars)
}

// Delete removes a member. No cascading side effects: party membership is
// computed from member records, not stored on parties.
func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// Helper functions

func parseMemberResult(result interface{}) (*model.Member, error) {
	data, err := unwrapOne(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseMemberRecord(data)
}

func parseMemberRecord(data map[string]interface{}) (*model.Member, error) {
	// The party link becomes the flat party_id the model carries
	if party, ok := data["party"]; ok && party != nil {
		if id := extractRecordID(party); id != "" {
			data["party_id"] = id
		}
		delete(data, "party")
	}

	createdOn := parseTime(data["created_on"])
	delete(data, "created_on")

	var member model.Member
	if err := decodeRecord(data, &member); err != nil {
		return nil, err
	}
	member.CreatedOn = createdOn
	return &member, nil
}

func parseMemberRecords(records []map[string]interface{}) ([]*model.Member, error) {
	members := make([]*model.Member, 0, len(records))
	for _, record := range records {
		member, err := parseMemberRecord(record)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}
