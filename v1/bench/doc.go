// Package bench measures lock throughput the way the classic spin lock
// microbenchmarks do: a fixed number of lock/unlock pairs is split across a
// configurable number of goroutines, all released together by a start
// barrier, each incrementing a shared counter inside the critical section.
// Keeping the total number of pairs constant makes runs with different
// goroutine counts comparable.
package bench
