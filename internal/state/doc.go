// Package state provides the shared page cache for the Tally UI.
//
// # Overview
//
// Every list screen publishes the page it just displayed. The Store keeps
// the latest snapshot per collection so other screens can read it without a
// request: the transaction form resolves account names from the cached
// accounts page, and the header shows the total of each collection.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock. Publish and Invalidate are called
// from the UI event loop; subscribers and the Redis mirror run elsewhere.
// Ordering is last-write-wins per collection.
//
// Snapshots hold rows as raw JSON and are copied on the way in and out, so
// callers can never mutate the cached bytes:
//
//	store.Publish(ctx, "finance-accounts", "", page, rows, total)
//	snap, ok := store.Get(ctx, "finance-accounts")
//	var accounts []domain.FinanceAccount
//	err := snap.Decode(&accounts)
//
// # Invalidation
//
// After a create, update or delete the owning screen calls Invalidate. The
// snapshot is dropped and subscribers of that collection receive an Event
// with Invalidated set. Screens that render data from another collection
// (transactions show account names) subscribe to it and refresh.
//
// Subscription channels hold one event. A subscriber that falls behind sees
// only the newest event, which is all a refresh needs.
//
// # Redis Mirror
//
// When redis_addr is configured the Store writes each snapshot to Redis with
// the configured TTL and reads it back on a local miss. Writes and evictions
// go through one background writer in call order, so Publish never waits on
// Redis; Flush waits for the queue and Close drains it. Redis errors are
// logged and otherwise ignored; the cache is never authoritative. Only an
// entry that fails to decode is deleted.
//
// # Testing Considerations
//
// The zero Store is ready to use and has no mirror:
//
//	var store state.Store
package state
