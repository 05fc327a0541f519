package model

import (
	"encoding/json"
	"time"
)

// EventType classifies a scheduled guild event
type EventType string

const (
	EventRaid    EventType = "raid"
	EventPvP     EventType = "pvp"
	EventSocial  EventType = "social"
	EventDungeon EventType = "dungeon"
)

// IsValid returns true if the event type is one of the known types
func (t EventType) IsValid() bool {
	switch t {
	case EventRaid, EventPvP, EventSocial, EventDungeon:
		return true
	default:
		return false
	}
}

// Participant is a member signed up for an event.
//
// Historical records stored participants as bare name strings; newer ones
// carry a join timestamp. Rather than inspecting shapes at every call site,
// the variant is tagged: Legacy marks entries that round-trip back to a
// bare string, and Name() normalizes access for both.
type Participant struct {
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at,omitzero"`
	Legacy   bool      `json:"-"`
}

// NewParticipant creates a participant with the current join time
func NewParticipant(name string) Participant {
	return Participant{Name: name, JoinedAt: time.Now().UTC()}
}

// UnmarshalJSON accepts either a bare name string or a {name, joined_at}
// object.
func (p *Participant) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Participant{Name: name, Legacy: true}
		return nil
	}

	type participant Participant
	var full participant
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	*p = Participant(full)
	return nil
}

// MarshalJSON writes legacy entries back as bare strings so stored
// documents keep their original shape.
func (p Participant) MarshalJSON() ([]byte, error) {
	if p.Legacy {
		return json.Marshal(p.Name)
	}
	type participant Participant
	return json.Marshal(participant(p))
}

// Event represents a scheduled guild event with participant sign-up
type Event struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Date            time.Time     `json:"date"`
	Location        string        `json:"location"`
	Type            EventType     `json:"type"`
	Participants    []Participant `json:"participants"`
	MaxParticipants int           `json:"max_participants"`
	CreatedOn       time.Time     `json:"created_on"`
}

// HasParticipant reports whether a name (legacy or not) is already signed up
func (e *Event) HasParticipant(name string) bool {
	for _, p := range e.Participants {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Full reports whether the event has reached its participant cap.
// A cap of 0 means unlimited.
func (e *Event) Full() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// CreateEventRequest represents a request to schedule an event
type CreateEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	Type            EventType `json:"type"`
	MaxParticipants int       `json:"max_participants"`
}

// UpdateEventRequest represents a partial event update
type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Type            *EventType `json:"type,omitempty"`
	MaxParticipants *int       `json:"max_participants,omitempty"`
}

// AddParticipantsRequest adds players to an event by name
type AddParticipantsRequest struct {
	Names []string `json:"names"`
}
