package lock

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

const (
	usersShift = 16
	oneUser    = 1 << usersShift
	ticketMask = 1<<usersShift - 1
)

// MaxTicketWaiters is the number of goroutines a Ticket can order. Beyond it
// ticket numbers alias and two goroutines may hold the lock at once.
const MaxTicketWaiters = ticketMask

// Ticket is a FIFO spin lock. Two 16-bit counters share one word: the low
// half is the ticket currently being served and the high half is the next
// ticket to hand out. The lock is free exactly when both halves are equal.
//
// At most MaxTicketWaiters goroutines may hold or wait on one Ticket at a
// time.
type Ticket struct {
	_    cpu.CacheLinePad
	word atomic.Uint32
	_    cpu.CacheLinePad
}

// NewTicket returns an unlocked Ticket.
func NewTicket() *Ticket { return new(Ticket) }

// Lock draws a ticket and spins until it is served.
func (l *Ticket) Lock() {
	me := uint16((l.word.Add(oneUser) - oneUser) >> usersShift)
	for uint16(l.word.Load()) != me {
		relax()
	}
}

// Unlock serves the next ticket. The carry out of the low half must not
// reach the users counter, which other goroutines keep incrementing.
func (l *Ticket) Unlock() {
	for {
		old := l.word.Load()
		next := old&^ticketMask | uint32(uint16(old)+1)
		if l.word.CompareAndSwap(old, next) {
			return
		}
	}
}

// TryLock takes the lock only when nobody holds or waits for it.
func (l *Ticket) TryLock() bool {
	me := uint16(l.word.Load() >> usersShift)
	cmp := uint32(me)<<usersShift | uint32(me)
	cmpnew := uint32(me+1)<<usersShift | uint32(me)
	return l.word.CompareAndSwap(cmp, cmpnew)
}

// Lockable reports whether the served ticket equals the next ticket, i.e.
// the lock is free and nobody is queued.
func (l *Ticket) Lockable() bool {
	w := l.word.Load()
	return uint16(w) == uint16(w>>usersShift)
}
