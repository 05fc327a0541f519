// Package database provides the persistence abstraction for Guildhall.
//
// The Database interface hides SurrealDB behind three query methods:
//   - Query: multiple results (SELECT queries returning lists)
//   - QueryOne: a single result (SELECT by ID)
//   - Execute: no result (CREATE/UPDATE/DELETE mutations)
//
// # Atomic batches
//
// Transactions here are BATCH-BASED, not connection-level. Statements
// accumulate in memory and are wrapped in BEGIN TRANSACTION / COMMIT
// TRANSACTION at commit time, so they apply all-or-nothing. There is no
// isolation between Add() calls before commit.
//
// Every operation that reads party order to compute new orders (reorder,
// party removal) must go through AtomicBatch: a partially applied order
// shift would leave the party list with duplicate or missing positions.
// See transaction.go.
//
// # Errors
//
// Check the sentinel errors with errors.Is:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // record is gone
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g. duplicate member name).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
