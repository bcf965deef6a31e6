package lfstack

import "github.com/mirkobrombin/go-spin/v1/lock"

// Locked is the same linked stack with every operation serialized by a lock.
// Unlike Stack it is safe for any number of concurrent poppers.
type Locked[T any] struct {
	mu  lock.Locker
	top *Node[T]
}

// NewLocked returns an empty stack guarded by l.
func NewLocked[T any](l lock.Locker) *Locked[T] {
	return &Locked[T]{mu: l}
}

// Push links n on top of the stack.
func (s *Locked[T]) Push(n *Node[T]) {
	s.mu.Lock()
	n.next = s.top
	s.top = n
	s.mu.Unlock()
}

// Pop unlinks and returns the top node, or nil when the stack is empty.
func (s *Locked[T]) Pop() *Node[T] {
	s.mu.Lock()
	n := s.top
	if n != nil {
		s.top = n.next
	}
	s.mu.Unlock()
	return n
}

// Empty reports whether the stack is empty.
func (s *Locked[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top == nil
}
