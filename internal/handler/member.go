package handler

import (
	"net/http"

	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// MemberHandler handles roster HTTP requests
type MemberHandler struct {
	roster     *service.RosterService
	assignment *service.AssignmentService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(roster *service.RosterService, assignment *service.AssignmentService) *MemberHandler {
	return &MemberHandler{roster: roster, assignment: assignment}
}

// List handles GET /v1/members - the full roster
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.roster.ListMembers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if members == nil {
		members = []*model.Member{}
	}

	WriteData(w, http.StatusOK, members)
}

// ListUnassigned handles GET /v1/members/unassigned
func (h *MemberHandler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	members, err := h.assignment.UnassignedMembers(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if members == nil {
		members = []*model.Member{}
	}

	WriteData(w, http.StatusOK, members)
}

// Create handles POST /v1/members - register a member
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMemberRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	member, err := h.roster.AddMember(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, member)
}

// Get handles GET /v1/members/{memberId}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberId")
	if memberID == "" {
		WriteError(w, model.NewBadRequestError("member ID required"))
		return
	}

	member, err := h.roster.GetMember(r.Context(), memberID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, member)
}

// Delete handles DELETE /v1/members/{memberId}
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberId")
	if memberID == "" {
		WriteError(w, model.NewBadRequestError("member ID required"))
		return
	}

	if err := h.roster.RemoveMember(r.Context(), memberID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// SetParty handles PATCH /v1/members/{memberId}/party - move a member
// into a party, or into the unassigned pool when party_id is null
func (h *MemberHandler) SetParty(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("memberId")
	if memberID == "" {
		WriteError(w, model.NewBadRequestError("member ID required"))
		return
	}

	var req model.MoveMemberRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.assignment.MoveMember(r.Context(), memberID, req.PartyID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
