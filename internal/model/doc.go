// Package model defines domain entities and request/response types for the
// Guildhall API.
//
// Core entities:
//
//   - Member: a registered character with a role and an optional party
//     assignment (nil PartyID = unassigned pool)
//   - Party: a named container with a dense, 1-based sequence position
//   - Event: a scheduled guild event with participant sign-up
//   - User: an authenticated account (admin or not)
//
// The package also carries RFC 9457 ProblemDetails for the HTTP surface
// (errors.go). It has no dependencies beyond the standard library; all
// persistence and business rules live in repository and service.
package model
