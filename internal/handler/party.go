package handler

import (
	"net/http"

	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// PartyHandler handles party HTTP requests
type PartyHandler struct {
	parties    *service.PartyService
	assignment *service.AssignmentService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(parties *service.PartyService, assignment *service.AssignmentService) *PartyHandler {
	return &PartyHandler{parties: parties, assignment: assignment}
}

// List handles GET /v1/parties - parties in sequence order
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	parties, err := h.parties.ListParties(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if parties == nil {
		parties = []*model.Party{}
	}

	WriteData(w, http.StatusOK, parties)
}

// Create handles POST /v1/parties - append a party to the sequence
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePartyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	party, err := h.parties.AddParty(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, party)
}

// Rename handles PATCH /v1/parties/{partyId}
func (h *PartyHandler) Rename(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("partyId")
	if partyID == "" {
		WriteError(w, model.NewBadRequestError("party ID required"))
		return
	}

	var req model.RenamePartyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.parties.RenameParty(r.Context(), partyID, req.Name); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Delete handles DELETE /v1/parties/{partyId} - members assigned to the
// party are returned to the unassigned pool, never deleted
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("partyId")
	if partyID == "" {
		WriteError(w, model.NewBadRequestError("party ID required"))
		return
	}

	if err := h.assignment.DeleteParty(r.Context(), partyID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Reorder handles POST /v1/parties/{partyId}/reorder
func (h *PartyHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("partyId")
	if partyID == "" {
		WriteError(w, model.NewBadRequestError("party ID required"))
		return
	}

	var req model.ReorderPartyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.parties.Reorder(r.Context(), partyID, req.TargetOrder); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Members handles GET /v1/parties/{partyId}/members
func (h *PartyHandler) Members(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("partyId")
	if partyID == "" {
		WriteError(w, model.NewBadRequestError("party ID required"))
		return
	}

	members, err := h.assignment.MembersByParty(r.Context(), partyID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if members == nil {
		members = []*model.Member{}
	}

	WriteData(w, http.StatusOK, members)
}

// Roster handles GET /v1/roster - the full grouped overview
func (h *PartyHandler) Roster(w http.ResponseWriter, r *http.Request) {
	overview, err := h.assignment.Overview(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, overview)
}
