package lock

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// k42Node is shared by the lock and its waiters. For a waiter, tail is a
// flag that stays non-nil while it must keep spinning. For the lock, tail is
// the end of the queue and next is the holder's successor.
type k42Node struct {
	_    cpu.CacheLinePad
	next atomic.Pointer[k42Node]
	tail atomic.Pointer[k42Node]
}

// k42Waiting marks a queued node whose predecessor still holds the lock.
var k42Waiting = new(k42Node)

var k42Nodes = sync.Pool{New: func() any { return new(k42Node) }}

// K42 is a FIFO queue lock in the MCS family. Unlike MCS it needs no node
// from the caller: a waiter's node is only used while it queues, and once
// the lock is taken the lock object itself stands in for the holder at the
// end of the queue. A K42 must not be copied after first use.
type K42 struct {
	head k42Node
}

// NewK42 returns an unlocked K42.
func NewK42() *K42 { return new(K42) }

// Lock implements Locker.
func (l *K42) Lock() {
	me := k42Nodes.Get().(*k42Node)
	me.next.Store(nil)
	me.tail.Store(nil)

	if pred := l.head.tail.Swap(me); pred != nil {
		me.tail.Store(k42Waiting)
		pred.next.Store(me)
		for me.tail.Load() != nil {
			relax()
		}
	}

	// We hold the lock. Move the queue bookkeeping from me onto the lock so
	// that me can be recycled.
	if succ := me.next.Load(); succ != nil {
		l.head.next.Store(succ)
	} else {
		l.head.next.Store(nil)
		if !l.head.tail.CompareAndSwap(me, &l.head) {
			// Someone queued behind me but has not linked in yet.
			for succ = me.next.Load(); succ == nil; succ = me.next.Load() {
				relax()
			}
			l.head.next.Store(succ)
		}
	}
	k42Nodes.Put(me)
}

// Unlock implements Locker.
func (l *K42) Unlock() {
	succ := l.head.next.Load()
	if succ == nil {
		if l.head.tail.CompareAndSwap(&l.head, nil) {
			return
		}
		for succ = l.head.next.Load(); succ == nil; succ = l.head.next.Load() {
			relax()
		}
	}
	succ.tail.Store(nil)
}

// TryLock takes the lock only if the queue is empty.
func (l *K42) TryLock() bool {
	return l.head.tail.CompareAndSwap(nil, &l.head)
}

// Lockable reports whether the queue is empty.
func (l *K42) Lockable() bool { return l.head.tail.Load() == nil }
