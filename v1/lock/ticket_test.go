package lock

import (
	"sync"
	"testing"
)

func TestTicketCountersWrap(t *testing.T) {
	l := NewTicket()
	// Both counters one step away from wrapping.
	l.word.Store(0xfffe<<usersShift | 0xfffe)

	var wg sync.WaitGroup
	counter := 0
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()
	if counter != 400 {
		t.Fatalf("lost updates across wraparound: %d", counter)
	}
	if !l.Lockable() {
		t.Fatalf("lock not free after wraparound, word %#x", l.word.Load())
	}
	want := uint16(0xfffe)
	want += 400
	if w := l.word.Load(); uint16(w) != want || uint16(w>>usersShift) != want {
		t.Fatalf("unexpected word %#x, want both halves %#x", w, want)
	}
}

func TestTicketUnlockDoesNotCarryIntoUsers(t *testing.T) {
	l := NewTicket()
	l.word.Store(0xffff<<usersShift | 0xffff)
	l.Lock()
	if w := l.word.Load(); w != 0x0000ffff {
		t.Fatalf("after lock: word %#x", w)
	}
	l.Unlock()
	if w := l.word.Load(); w != 0 {
		t.Fatalf("after unlock: word %#x, want 0", w)
	}
}

func TestTicketTryLockWithWaiter(t *testing.T) {
	l := NewTicket()
	l.Lock()
	done := make(chan struct{})
	go func() {
		l.Lock()
		l.Unlock()
		close(done)
	}()
	waitUntil(t, "waiter ticket", func() bool { return uint16(l.word.Load()>>usersShift) == 2 })

	before := l.word.Load()
	if l.TryLock() {
		t.Fatal("trylock succeeded with a holder and a waiter")
	}
	if l.word.Load() != before {
		t.Fatal("failed trylock modified the lock word")
	}
	if l.Lockable() {
		t.Fatal("lock reported lockable with a waiter")
	}
	l.Unlock()
	<-done
	if !l.Lockable() {
		t.Fatal("lock not free after waiter released")
	}
}
