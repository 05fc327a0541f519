// Package service implements the business logic layer for the Guildhall API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Services
//
//   - RosterService owns the member list: registration, removal, and the
//     exact-match name uniqueness rule.
//   - PartyService is the sequencer for the ordered party set and is the
//     sole writer of party positions. All order mutations are planned
//     against a snapshot and committed atomically, keeping positions
//     dense at 1..N.
//   - AssignmentService coordinates the two: it validates member moves
//     against the live party list and evacuates members before a party
//     is deleted.
//   - EventService manages the guild calendar and event sign-ups.
//   - AuthService handles registration, login, and JWT issuance.
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Change Feed
//
// Every successful write publishes a notification on the Feed for the
// collection it touched. Subscribers re-read the collection on each
// notification, so they only ever observe complete states.
//
// # Error Handling
//
// Services return sentinel errors defined in errors.go:
//
//	var (
//	    ErrPartyNotFound  = errors.New("party not found")
//	    ErrMemberNotFound = errors.New("member not found")
//	)
//
// Handlers map these to HTTP problem responses in one place.
package service
