package lock

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

const (
	free uint32 = 0
	busy uint32 = 1
)

// maxBackoff caps the number of relax iterations between polls.
const maxBackoff = 16

// Backoff is an exchange spin lock. A failed exchange is followed by a
// read-only polling phase whose delay doubles on every observation of a
// held lock, so waiters stop hammering the line with writes.
type Backoff struct {
	_     cpu.CacheLinePad
	state atomic.Uint32
	_     cpu.CacheLinePad
}

// NewBackoff returns an unlocked Backoff.
func NewBackoff() *Backoff { return new(Backoff) }

// Lock acquires the lock.
func (l *Backoff) Lock() {
	wait := 1
	for l.state.Swap(busy) != free {
		spin(wait)
		for l.state.Load() != free {
			// Leverage the exponential backoff algorithm, see https://en.wikipedia.org/wiki/Exponential_backoff.
			if wait < maxBackoff {
				wait <<= 1
			}
			spin(wait)
		}
	}
}

// Unlock releases the lock.
func (l *Backoff) Unlock() { l.state.Store(free) }

// TryLock makes a single exchange without backing off.
func (l *Backoff) TryLock() bool { return l.state.Swap(busy) == free }

// Lockable reports whether the word is free.
func (l *Backoff) Lockable() bool { return l.state.Load() == free }

func spin(n int) {
	for i := 0; i < n; i++ {
		relax()
	}
}
