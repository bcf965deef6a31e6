package lock

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Elided is an exchange spin lock whose acquiring exchange and releasing
// store carry the XACQUIRE/XRELEASE lock-elision prefixes. On processors
// with hardware lock elision the critical section may run speculatively
// without the lock word ever being written; a conflict aborts the
// speculation and the exchange is re-executed for real. Processors without
// the feature ignore the prefixes, so the protocol degrades to a plain
// exchange lock.
//
// The hinted instructions are only emitted on amd64 builds without the race
// detector; see ElisionHinted.
type Elided struct {
	_     cpu.CacheLinePad
	state uint32
	_     cpu.CacheLinePad
}

// NewElided returns an unlocked Elided.
func NewElided() *Elided { return new(Elided) }

// ElisionHinted reports whether this build emits the elision prefixes.
func ElisionHinted() bool { return elisionHinted }

// Lock acquires the lock, polling with plain loads while it is held.
func (l *Elided) Lock() {
	for xacquireSwap(&l.state, busy) != free {
		for atomic.LoadUint32(&l.state) != free {
			relax()
		}
	}
}

// Unlock releases the lock.
func (l *Elided) Unlock() { xreleaseStore(&l.state) }

// TryLock makes a single hinted exchange.
func (l *Elided) TryLock() bool { return xacquireSwap(&l.state, busy) == free }

// Lockable reports whether the word is free.
func (l *Elided) Lockable() bool { return atomic.LoadUint32(&l.state) == free }
