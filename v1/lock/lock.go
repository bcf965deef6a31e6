package lock

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	spinerrors "github.com/mirkobrombin/go-spin/v1/errors"
)

// Locker is the capability set shared by every lock in this package.
type Locker interface {
	sync.Locker
	// TryLock acquires the lock only if it is free right now. It never spins.
	TryLock() bool
	// Lockable reports whether the lock was observed free. The answer may be
	// stale by the time the caller acts on it.
	Lockable() bool
}

// Kind selects a lock algorithm.
type Kind int

const (
	// KindTAS is a compare-and-swap test-and-set lock.
	KindTAS Kind = iota
	// KindBackoff is an exchange lock with exponential backoff.
	KindBackoff
	// KindElided is an exchange lock carrying hardware lock-elision hints.
	KindElided
	// KindTicket is a FIFO ticket lock.
	KindTicket
	// KindMCS is the MCS queue lock.
	KindMCS
	// KindK42 is the K42 variant of the MCS queue lock.
	KindK42
	// KindMutex delegates to sync.Mutex.
	KindMutex

	numKinds
)

var kindNames = [numKinds]string{
	KindTAS:     "tas",
	KindBackoff: "backoff",
	KindElided:  "elided",
	KindTicket:  "ticket",
	KindMCS:     "mcs",
	KindK42:     "k42",
	KindMutex:   "mutex",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// FIFO reports whether waiters are granted the lock in arrival order.
func (k Kind) FIFO() bool {
	switch k {
	case KindTicket, KindMCS, KindK42:
		return true
	}
	return false
}

// Kinds returns every supported algorithm in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns the Kind named s. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", spinerrors.ErrUnknownKind, s)
}

// relax is the busy-wait hint. Yielding keeps a spinning goroutine from
// starving the holder when goroutines outnumber GOMAXPROCS.
func relax() {
	runtime.Gosched()
}
