// Package handler provides HTTP request handlers for the Guildhall API.
//
// The handler package contains all HTTP endpoint implementations organized
// by domain. Each handler struct encapsulates the services needed to serve
// requests for a feature area (roster, parties, events, auth).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Service errors pass through MapServiceError to RFC 9457 Problem
//     Details responses
//
// # Live Feed
//
// LiveHandler serves the SSE change feed at /v1/live/{collection}: a full
// snapshot on connect, then a fresh snapshot after every change to that
// collection.
package handler
