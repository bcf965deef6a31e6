package lfstack

import "sync/atomic"

// Node is a stack element. The stack owns a node while it is linked in; a
// successful Pop hands it back to the caller.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// NewNode returns an unlinked node holding v.
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// Stack is a lock-free LIFO stack. The zero value is empty.
type Stack[T any] struct {
	top atomic.Pointer[Node[T]]
}

// Push links n on top of the stack, retrying if another push or pop got in
// between.
func (s *Stack[T]) Push(n *Node[T]) {
	for {
		old := s.top.Load()
		n.next = old
		if s.top.CompareAndSwap(old, n) {
			return
		}
	}
}

// Pop unlinks and returns the top node, or nil when the stack is empty.
// Only one goroutine may call Pop at a time.
func (s *Stack[T]) Pop() *Node[T] {
	for {
		old := s.top.Load()
		if old == nil {
			return nil
		}
		next := old.next
		if s.top.CompareAndSwap(old, next) {
			return old
		}
	}
}

// Empty reports whether the stack was observed empty.
func (s *Stack[T]) Empty() bool { return s.top.Load() == nil }
