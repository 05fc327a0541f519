package service

import (
	"context"
	"strings"
	"time"

	"github.com/ravenshold/guildhall/api/internal/model"
)

// EventRepository defines the interface for calendar event persistence
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListUpcoming(ctx context.Context) ([]*model.Event, error)
	ListPast(ctx context.Context) ([]*model.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
	Update(ctx context.Context, id string, req *model.UpdateEventRequest) error
	SetParticipants(ctx context.Context, id string, participants []model.Participant) error
	Delete(ctx context.Context, id string) error
}

// EventService manages the guild calendar
type EventService struct {
	repo EventRepository
	feed *Feed
}

// NewEventService creates a new event service
func NewEventService(repo EventRepository, feed *Feed) *EventService {
	return &EventService{repo: repo, feed: feed}
}

// CreateEvent schedules a new event
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEventTitleRequired
	}
	if !req.Type.IsValid() {
		return nil, ErrInvalidEventType
	}

	event := &model.Event{
		Title:           title,
		Description:     req.Description,
		Date:            req.Date,
		Location:        req.Location,
		Type:            req.Type,
		Participants:    []model.Participant{},
		MaxParticipants: req.MaxParticipants,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.feed.Publish(CollectionEvents)
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListEvents retrieves all events, soonest first
func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// ListUpcomingEvents retrieves events whose date is in the future
func (s *EventService) ListUpcomingEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListUpcoming(ctx)
}

// ListPastEvents retrieves events whose date has passed
func (s *EventService) ListPastEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListPast(ctx)
}

// ListEventsBetween retrieves events within a date window, for the
// calendar month view
func (s *EventService) ListEventsBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	return s.repo.ListBetween(ctx, from, to)
}

// UpdateEvent applies a partial update; unset fields keep their values
func (s *EventService) UpdateEvent(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrEventTitleRequired
	}
	if req.Type != nil && !req.Type.IsValid() {
		return nil, ErrInvalidEventType
	}

	if err := s.repo.Update(ctx, id, &req); err != nil {
		return nil, err
	}

	s.feed.Publish(CollectionEvents)
	return s.GetEvent(ctx, id)
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.feed.Publish(CollectionEvents)
	return nil
}

// AddParticipants signs names up for an event. Names already present,
// whether stored in the legacy bare-string form or the full form, are
// skipped rather than duplicated. Adding past the participant cap fails
// with ErrEventFull before any name is written.
func (s *EventService) AddParticipants(ctx context.Context, id string, req model.AddParticipantsRequest) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	var added []model.Participant
	for _, raw := range req.Names {
		name := strings.TrimSpace(raw)
		if name == "" || event.HasParticipant(name) {
			continue
		}
		duplicate := false
		for _, p := range added {
			if p.Name == name {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		added = append(added, model.NewParticipant(name))
	}
	if len(added) == 0 {
		return nil, ErrNoParticipantsGiven
	}

	if event.MaxParticipants > 0 && len(event.Participants)+len(added) > event.MaxParticipants {
		return nil, ErrEventFull
	}

	participants := append(event.Participants, added...)
	if err := s.repo.SetParticipants(ctx, id, participants); err != nil {
		return nil, err
	}
	event.Participants = participants

	s.feed.Publish(CollectionEvents)
	return event, nil
}

// RemoveParticipant takes a name off an event's sign-up list
func (s *EventService) RemoveParticipant(ctx context.Context, id, name string) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	name = strings.TrimSpace(name)
	participants := make([]model.Participant, 0, len(event.Participants))
	for _, p := range event.Participants {
		if p.Name != name {
			participants = append(participants, p)
		}
	}
	if len(participants) == len(event.Participants) {
		return nil, ErrParticipantNotFound
	}

	if err := s.repo.SetParticipants(ctx, id, participants); err != nil {
		return nil, err
	}
	event.Participants = participants

	s.feed.Publish(CollectionEvents)
	return event, nil
}
