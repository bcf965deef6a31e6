//go:build !amd64 || race

package lock

import "sync/atomic"

const elisionHinted = false

func xacquireSwap(addr *uint32, v uint32) uint32 {
	return atomic.SwapUint32(addr, v)
}

func xreleaseStore(addr *uint32) {
	atomic.StoreUint32(addr, free)
}
