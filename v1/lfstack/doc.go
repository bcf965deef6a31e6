// Package lfstack provides a linked stack whose push and pop are a single
// compare-and-swap loop on the top pointer, and a lock-guarded variant of the
// same structure for comparison.
//
// The lock-free Stack does not solve the ABA problem. It is only correct
// while at most one goroutine pops; any number of goroutines may push
// concurrently with that popper. A node that was popped may be pushed again,
// but doing so while a second goroutine pops is exactly the ABA case and can
// corrupt the stack.
package lfstack
