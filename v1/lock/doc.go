// Package lock provides spin-based mutual-exclusion primitives for shared
// memory. Every algorithm implements Locker, so callers can swap the
// test-and-set, exchange-with-backoff, elided exchange, ticket, MCS and K42
// locks (or the sync.Mutex baseline) without touching the critical sections
// they guard.
//
// Zero values are unlocked. None of the locks are re-entrant, and releasing a
// lock that the caller does not hold is undefined behaviour.
package lock
