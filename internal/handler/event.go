package handler

import (
	"net/http"
	"time"

	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// EventHandler handles calendar event HTTP requests
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /v1/events. Supports ?when=upcoming|past and an
// explicit ?from=RFC3339&to=RFC3339 window for the calendar month view.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		events []*model.Event
		err    error
	)
	switch {
	case query.Get("from") != "" || query.Get("to") != "":
		from, perr := time.Parse(time.RFC3339, query.Get("from"))
		if perr != nil {
			WriteError(w, model.NewBadRequestError("invalid 'from' timestamp"))
			return
		}
		to, perr := time.Parse(time.RFC3339, query.Get("to"))
		if perr != nil {
			WriteError(w, model.NewBadRequestError("invalid 'to' timestamp"))
			return
		}
		events, err = h.svc.ListEventsBetween(ctx, from, to)
	case query.Get("when") == "upcoming":
		events, err = h.svc.ListUpcomingEvents(ctx)
	case query.Get("when") == "past":
		events, err = h.svc.ListPastEvents(ctx)
	default:
		events, err = h.svc.ListEvents(ctx)
	}
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if events == nil {
		events = []*model.Event{}
	}

	WriteData(w, http.StatusOK, events)
}

// Get handles GET /v1/events/{eventId}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	event, err := h.svc.GetEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// Create handles POST /v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event)
}

// Update handles PATCH /v1/events/{eventId}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	var req model.UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), eventID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// Delete handles DELETE /v1/events/{eventId}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), eventID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// AddParticipants handles POST /v1/events/{eventId}/participants
func (h *EventHandler) AddParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	var req model.AddParticipantsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.svc.AddParticipants(r.Context(), eventID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// RemoveParticipant handles DELETE /v1/events/{eventId}/participants/{name}
func (h *EventHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	name := r.PathValue("name")
	if eventID == "" || name == "" {
		WriteError(w, model.NewBadRequestError("event ID and participant name required"))
		return
	}

	event, err := h.svc.RemoveParticipant(r.Context(), eventID, name)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}
