package lock

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// MCSNode is a waiter's queue entry. A node is owned by one goroutine from
// Acquire until the matching Release returns and must not be handed to a
// second Acquire in between. Nodes can be reused across acquisitions.
type MCSNode struct {
	_     cpu.CacheLinePad
	next  atomic.Pointer[MCSNode]
	ready atomic.Bool
	_     cpu.CacheLinePad
}

// MCS is the Mellor-Crummey/Scott queue lock. Waiters form a linked queue
// through their nodes and each one spins on its own node, so a release
// touches only the successor's cache line. Ordering is FIFO.
//
// Acquire and Release work with caller-owned nodes. The Locker methods take
// nodes from an internal pool instead.
type MCS struct {
	tail atomic.Pointer[MCSNode]

	// owner is the node of the current Locker-style holder. Only the holder
	// reads or writes it.
	owner *MCSNode
}

var mcsNodes = sync.Pool{New: func() any { return new(MCSNode) }}

// NewMCS returns an unlocked MCS.
func NewMCS() *MCS { return new(MCS) }

// Acquire enqueues n and spins until its predecessor hands the lock over.
func (l *MCS) Acquire(n *MCSNode) {
	n.next.Store(nil)
	n.ready.Store(false)

	pred := l.tail.Swap(n)
	if pred == nil {
		return
	}
	pred.next.Store(n)
	for !n.ready.Load() {
		relax()
	}
}

// Release hands the lock to n's successor, or empties the queue when there
// is none. A successor that has swapped the tail but not linked itself yet is
// waited for.
func (l *MCS) Release(n *MCSNode) {
	succ := n.next.Load()
	if succ == nil {
		if l.tail.CompareAndSwap(n, nil) {
			return
		}
		for succ = n.next.Load(); succ == nil; succ = n.next.Load() {
			relax()
		}
	}
	succ.ready.Store(true)
}

// TryAcquire takes the lock with n only if the queue is empty.
func (l *MCS) TryAcquire(n *MCSNode) bool {
	n.next.Store(nil)
	n.ready.Store(false)
	return l.tail.CompareAndSwap(nil, n)
}

// Lock implements Locker.
func (l *MCS) Lock() {
	n := mcsNodes.Get().(*MCSNode)
	l.Acquire(n)
	l.owner = n
}

// Unlock implements Locker.
func (l *MCS) Unlock() {
	n := l.owner
	l.owner = nil
	l.Release(n)
	mcsNodes.Put(n)
}

// TryLock implements Locker.
func (l *MCS) TryLock() bool {
	n := mcsNodes.Get().(*MCSNode)
	if !l.TryAcquire(n) {
		mcsNodes.Put(n)
		return false
	}
	l.owner = n
	return true
}

// Lockable reports whether the queue is empty.
func (l *MCS) Lockable() bool { return l.tail.Load() == nil }
