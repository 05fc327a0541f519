// Package middleware provides HTTP middleware for the Guildhall API.
//
// The middleware package contains reusable components for request
// identification, logging, panic recovery, CORS, compression, and JWT
// authentication.
//
// # Composition
//
// Handlers are wrapped with Chain, outermost middleware first:
//
//	handler := middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.CORS(origins),
//	)
//
// # Authentication
//
// Auth validates a Bearer token and stores the claims on the request
// context; AdminAuth additionally requires the admin role:
//
//	protected := middleware.Auth(jwtService)(handler)
//
// After authentication, handlers read the identity via helpers:
//
//	userID := middleware.GetUserID(r.Context())
//	claims := middleware.GetClaims(r.Context())
package middleware
