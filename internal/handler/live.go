package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// LiveHandler streams collection changes over SSE. On connect the client
// receives a full snapshot of the collection; after every change
// notification it receives a fresh snapshot, so the client only ever
// observes complete states.
type LiveHandler struct {
	feed    *service.Feed
	roster  *service.RosterService
	parties *service.PartyService
	events  *service.EventService
}

// NewLiveHandler creates a new live handler
func NewLiveHandler(feed *service.Feed, roster *service.RosterService, parties *service.PartyService, events *service.EventService) *LiveHandler {
	return &LiveHandler{feed: feed, roster: roster, parties: parties, events: events}
}

// Stream handles GET /v1/live/{collection}
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	collection := service.Collection(r.PathValue("collection"))
	if !collection.Valid() {
		WriteError(w, model.NewBadRequestError("unknown collection"))
		return
	}

	// The stream must outlive the server's WriteTimeout; clear the
	// per-request write deadline so subscriptions are not severed mid-stream
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		WriteError(w, model.NewInternalError("streaming not supported"))
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	subscriberID := uuid.New().String()
	sub := h.feed.Subscribe(collection, subscriberID)
	defer h.feed.Unsubscribe(collection, subscriberID)

	ctx := r.Context()

	fmt.Fprintf(w, "event: connected\ndata: {\"subscriber_id\":%q}\n\n", subscriberID)
	if err := h.writeSnapshot(ctx, w, collection); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		return
	}

	for {
		select {
		case change, ok := <-sub.Changes:
			if !ok {
				return
			}
			if change.Kind == service.ChangeHeartbeat {
				fmt.Fprint(w, "event: heartbeat\ndata: {}\n\n")
				if err := rc.Flush(); err != nil {
					return
				}
				continue
			}
			if err := h.writeSnapshot(ctx, w, collection); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-sub.Done:
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

func (h *LiveHandler) writeSnapshot(ctx context.Context, w http.ResponseWriter, collection service.Collection) error {
	var (
		data interface{}
		err  error
	)
	switch collection {
	case service.CollectionMembers:
		data, err = h.roster.ListMembers(ctx)
	case service.CollectionParties:
		data, err = h.parties.ListParties(ctx)
	case service.CollectionEvents:
		data, err = h.events.ListEvents(ctx)
	}
	if err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
	return err
}
