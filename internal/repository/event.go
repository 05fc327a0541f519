package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
)

// EventRepository handles calendar event persistence
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create schedules a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			title: $title,
			description: $description,
			date: <datetime>$date,
			location: $location,
			type: $type,
			participants: $participants,
			max_participants: $max_participants,
			created_on: time::now()
		}
	`
	participants, err := participantsValue(event.Participants)
	if err != nil {
		return err
	}
	vars := map[string]interface{}{
		"title":            event.Title,
		"description":      event.Description,
		"date":             event.Date.UTC().Format(time.RFC3339),
		"location":         event.Location,
		"type":             string(event.Type),
		"participants":     participants,
		"max_participants": event.MaxParticipants,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records := unwrapMany(results)
	if len(records) == 0 {
		return database.ErrQuery
	}

	created, err := parseEventRecord(records[len(records)-1])
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when absent.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
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
	return parseEventRecord(data)
}

// List retrieves all events ordered by date
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY date ASC`
	return r.queryEvents(ctx, query, nil)
}

// ListUpcoming retrieves events at or after now, soonest first
func (r *EventRepository) ListUpcoming(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE date >= time::now() ORDER BY date ASC`
	return r.queryEvents(ctx, query, nil)
}

// ListPast retrieves events before now, most recent first
func (r *EventRepository) ListPast(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE date < time::now() ORDER BY date DESC`
	return r.queryEvents(ctx, query, nil)
}

// ListBetween retrieves events in [from, to), ordered by date. Used for
// the month view of the calendar.
func (r *EventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE date >= <datetime>$from AND date < <datetime>$to ORDER BY date ASC`
	vars := map[string]interface{}{
		"from": from.UTC().Format(time.RFC3339),
		"to":   to.UTC().Format(time.RFC3339),
	}
	return r.queryEvents(ctx, query, vars)
}

// Update applies a partial update built from the allowed event fields
func (r *EventRepository) Update(ctx context.Context, id string, req *model.UpdateEventRequest) error {
	query := `UPDATE type::record($id) SET
		title = IF $title IS NOT NULL THEN $title ELSE title END,
		description = IF $description IS NOT NULL THEN $description ELSE description END,
		date = IF $date IS NOT NULL THEN <datetime>$date ELSE date END,
		location = IF $location IS NOT NULL THEN $location ELSE location END,
		type = IF $type IS NOT NULL THEN $type ELSE type END,
		max_participants = IF $max_participants IS NOT NULL THEN $max_participants ELSE max_participants END
	`
	var date interface{}
	if req.Date != nil {
		date = req.Date.UTC().Format(time.RFC3339)
	}
	var eventType interface{}
	if req.Type != nil {
		eventType = string(*req.Type)
	}
	vars := map[string]interface{}{
		"id":               id,
		"title":            nilIfUnsetString(req.Title),
		"description":      nilIfUnsetString(req.Description),
		"date":             date,
		"location":         nilIfUnsetString(req.Location),
		"type":             eventType,
		"max_participants": nilIfUnsetInt(req.MaxParticipants),
	}
	return r.db.Execute(ctx, query, vars)
}

// SetParticipants replaces the participant list. The whole array is
// written in one update, mirroring how the sign-up flow appends.
func (r *EventRepository) SetParticipants(ctx context.Context, id string, participants []model.Participant) error {
	value, err := participantsValue(participants)
	if err != nil {
		return err
	}
	query := `UPDATE type::record($id) SET participants = $participants`
	vars := map[string]interface{}{
		"id":           id,
		"participants": value,
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, vars map[string]interface{}) ([]*model.Event, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	records := unwrapMany(results)
	events := make([]*model.Event, 0, len(records))
	for _, record := range records {
		event, err := parseEventRecord(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// participantsValue renders participants into the stored mixed-shape array:
// legacy entries stay bare strings, the rest are {name, joined_at} objects.
func participantsValue(participants []model.Participant) ([]interface{}, error) {
	jsonBytes, err := json.Marshal(participants)
	if err != nil {
		return nil, err
	}
	var value []interface{}
	if err := json.Unmarshal(jsonBytes, &value); err != nil {
		return nil, err
	}
	if value == nil {
		value = []interface{}{}
	}
	return value, nil
}

func parseEventRecord(data map[string]interface{}) (*model.Event, error) {
	date := parseTime(data["date"])
	delete(data, "date")
	createdOn := parseTime(data["created_on"])
	delete(data, "created_on")

	var event model.Event
	if err := decodeRecord(data, &event); err != nil {
		return nil, err
	}
	event.Date = date
	event.CreatedOn = createdOn
	return &event, nil
}

func nilIfUnsetString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nilIfUnsetInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
