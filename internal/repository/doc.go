// Package repository implements data access against the database
// abstraction.
//
// Repositories own the SurrealQL for their collection and the parsing
// back into model types; they never hold business rules. Three persistence
// guarantees the services rely on live here:
//
//   - member/user creation runs its duplicate check and insert inside one
//     transaction (check-then-insert is never observable half-done)
//   - party order mutations (reorder plans, delete-with-compaction) commit
//     through database.AtomicBatch
//   - reads that miss return (nil, nil), leaving not-found policy to the
//     service layer
package repository
