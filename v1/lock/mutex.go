package lock

import (
	"sync"
	"sync/atomic"
)

// Mutex adapts sync.Mutex to Locker. It parks waiters in the runtime
// scheduler instead of spinning and serves as the baseline the spin locks
// are measured against.
type Mutex struct {
	mu   sync.Mutex
	held atomic.Bool
}

// NewMutex returns an unlocked Mutex.
func NewMutex() *Mutex { return new(Mutex) }

// Lock implements Locker.
func (m *Mutex) Lock() {
	m.mu.Lock()
	m.held.Store(true)
}

// Unlock implements Locker.
func (m *Mutex) Unlock() {
	m.held.Store(false)
	m.mu.Unlock()
}

// TryLock implements Locker.
func (m *Mutex) TryLock() bool {
	if !m.mu.TryLock() {
		return false
	}
	m.held.Store(true)
	return true
}

// Lockable reports whether the mutex was free when observed.
func (m *Mutex) Lockable() bool { return !m.held.Load() }
