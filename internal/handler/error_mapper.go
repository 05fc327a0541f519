package handler

import (
	"errors"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrMemberNotFound):
		return model.NewNotFoundError("member")
	case errors.Is(err, service.ErrPartyNotFound):
		return model.NewNotFoundError("party")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrParticipantNotFound):
		return model.NewNotFoundError("participant")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrDuplicateMemberName),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrEventFull):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrMemberNameRequired),
		errors.Is(err, service.ErrMemberNameTooLong),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrEventTitleRequired),
		errors.Is(err, service.ErrInvalidEventType),
		errors.Is(err, service.ErrNoParticipantsGiven),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError(err.Error())

	// ===== Storage Errors =====
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("resource")
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError(err.Error())
	case errors.Is(err, database.ErrConnection):
		return model.NewInternalError("storage unavailable")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
