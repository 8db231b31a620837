// Package state holds the load-state machine behind the species view.
//
// # Overview
//
// A session performs one load cycle: fetch a film, fetch each of its
// species, then show them. The cycle moves through four phases:
//
//	Idle ──Start──> Loading ──Succeed──> Loaded
//	                   │
//	                   └─────Fail──────> Failed
//
// Reduce is the pure transition function. It never mutates its input and
// ignores Succeed or Fail unless the state is Loading, so a late settle
// event from an abandoned cycle cannot overwrite a newer one.
//
// # Flags
//
// LoadState keeps the IsLoading and HasError flags alongside Phase because
// the renderer branches on them directly:
//
//   - IsLoading is true exactly while Phase is Loading
//   - HasError is true exactly while Phase is Failed
//   - Species stays empty after a failure; there is no partial list
//
// # Store
//
// Store wraps Reduce behind a sync.RWMutex:
//
//   - Dispatch(): write lock, reduce, stamp StartedAt/SettledAt
//   - Snapshot(): read lock, deep copy
//   - Subscribe(): register a listener called after each Dispatch
//
// Listeners run on the dispatching goroutine after the lock is released
// and receive their own copy of the state. The UI uses this to push a
// message into the Bubble Tea program; the app package uses it to log
// phase changes.
//
// Only the load effect in package app dispatches. Everything else reads.
package state
