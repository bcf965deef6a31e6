package lock

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// TAS is a test-and-set spin lock. Every attempt is a compare-and-swap on
// the lock word, so contended acquisition keeps the cache line bouncing
// between waiters. It offers no fairness.
type TAS struct {
	_     cpu.CacheLinePad
	state atomic.Uint32
	_     cpu.CacheLinePad
}

// NewTAS returns an unlocked TAS.
func NewTAS() *TAS { return new(TAS) }

// Lock spins until the word moves from free to held.
func (l *TAS) Lock() {
	for !l.state.CompareAndSwap(free, busy) {
		relax()
	}
}

// Unlock releases the lock.
func (l *TAS) Unlock() { l.state.Store(free) }

// TryLock makes a single acquisition attempt.
func (l *TAS) TryLock() bool { return l.state.CompareAndSwap(free, busy) }

// Lockable reports whether the word is free.
func (l *TAS) Lockable() bool { return l.state.Load() == free }
