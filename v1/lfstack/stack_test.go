package lfstack

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mirkobrombin/go-spin/v1/lock"
)

// pusherPopper is satisfied by both stack flavours.
type pusherPopper interface {
	Push(*Node[int])
	Pop() *Node[int]
	Empty() bool
}

func TestStackLIFO(t *testing.T) {
	var s Stack[int]
	if s.Pop() != nil {
		t.Fatal("pop on empty stack returned a node")
	}
	for _, v := range []int{1, 2, 3} {
		s.Push(NewNode(v))
	}
	for _, want := range []int{3, 2, 1} {
		n := s.Pop()
		if n == nil || n.Value != want {
			t.Fatalf("pop: got %v, want %d", n, want)
		}
	}
	if !s.Empty() || s.Pop() != nil {
		t.Fatal("stack should be empty")
	}
}

func TestLockedLIFO(t *testing.T) {
	for _, kind := range lock.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			l, err := lock.New(kind)
			if err != nil {
				t.Fatalf("new lock: %v", err)
			}
			s := NewLocked[int](l)
			for _, v := range []int{1, 2, 3} {
				s.Push(NewNode(v))
			}
			for _, want := range []int{3, 2, 1} {
				if n := s.Pop(); n == nil || n.Value != want {
					t.Fatalf("pop: got %v, want %d", n, want)
				}
			}
			if !s.Empty() {
				t.Fatal("stack should be empty")
			}
		})
	}
}

// drainWithOnePopper runs pushers goroutines each pushing perPusher distinct
// values while a single goroutine pops, and checks every value is popped
// exactly once.
func drainWithOnePopper(t *testing.T, s pusherPopper, pushers, perPusher int) {
	t.Helper()
	total := pushers * perPusher
	seen := make([]bool, total)
	var pushed atomic.Int64

	var wg sync.WaitGroup
	for p := 0; p < pushers; p++ {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perPusher; i++ {
				s.Push(NewNode(pushers*i + p))
				pushed.Add(1)
			}
		}()
	}

	popped := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for popped < total {
			n := s.Pop()
			if n == nil {
				runtime.Gosched()
				continue
			}
			if n.Value < 0 || n.Value >= total {
				t.Errorf("popped value %d out of range", n.Value)
				return
			}
			if seen[n.Value] {
				t.Errorf("value %d popped twice", n.Value)
				return
			}
			seen[n.Value] = true
			popped++
		}
	}()

	wg.Wait()
	<-done
	if popped != total {
		t.Fatalf("popped %d nodes, want %d (pushed %d)", popped, total, pushed.Load())
	}
	for v, ok := range seen {
		if !ok {
			t.Fatalf("value %d never popped", v)
		}
	}
	if !s.Empty() {
		t.Fatal("stack not empty after draining")
	}
}

func TestStackSinglePopperManyPushers(t *testing.T) {
	cases := []struct{ pushers, perPusher int }{
		{1, 10000},
		{3, 20000},
		{16, 2000},
	}
	for _, tc := range cases {
		var s Stack[int]
		drainWithOnePopper(t, &s, tc.pushers, tc.perPusher)
	}
}

func TestLockedSinglePopperManyPushers(t *testing.T) {
	for _, kind := range lock.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			l, err := lock.New(kind)
			if err != nil {
				t.Fatalf("new lock: %v", err)
			}
			drainWithOnePopper(t, NewLocked[int](l), 3, 2000)
		})
	}
}

// TestStackABAWithNodeReuse replays the interleaving that makes a second
// concurrent popper unsafe: a stalled pop's compare-and-swap succeeds after
// the top node was popped and pushed back, reinstalling a node that is no
// longer on the stack.
func TestStackABAWithNodeReuse(t *testing.T) {
	var s Stack[int]
	a, b, c := NewNode(1), NewNode(2), NewNode(3)
	s.Push(c)
	s.Push(b)
	s.Push(a)

	// Popper one reads top and its successor, then stalls.
	old := s.top.Load()
	next := old.next
	if old != a || next != b {
		t.Fatal("unexpected initial stack shape")
	}

	// Popper two pops a and b and pushes a back.
	if s.Pop() != a || s.Pop() != b {
		t.Fatal("second popper got unexpected nodes")
	}
	s.Push(a)

	// Popper one resumes. The top pointer is a again, so the stale swap
	// goes through.
	if !s.top.CompareAndSwap(old, next) {
		t.Fatal("expected the stale compare-and-swap to succeed")
	}
	if got := s.Pop(); got != b {
		t.Fatalf("expected the already popped node to resurface, got %v", got)
	}
	if got := s.Pop(); got != c {
		t.Fatalf("expected c below the resurfaced node, got %v", got)
	}
}
