//go:build !linux

package bench

// bindThread is a no-op where thread affinity is not supported.
func bindThread(int) error { return nil }
