package service

import "errors"

// Centralized service layer errors. Handlers map these to HTTP responses
// in one place (handler.MapServiceError).

// ===== Roster Errors =====
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberNameRequired  = errors.New("member name is required")
	ErrMemberNameTooLong   = errors.New("member name exceeds maximum length")
	ErrDuplicateMemberName = errors.New("a member with this name already exists")
	ErrInvalidRole         = errors.New("invalid member role")
)

// ===== Party Errors =====
var (
	ErrPartyNotFound = errors.New("party not found")
)

// ===== Event Errors =====
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventTitleRequired  = errors.New("event title is required")
	ErrInvalidEventType    = errors.New("invalid event type")
	ErrEventFull           = errors.New("event is full")
	ErrNoParticipantsGiven = errors.New("no participant names given")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ===== Auth Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
)
