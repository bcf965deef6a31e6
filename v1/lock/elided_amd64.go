//go:build amd64 && !race

package lock

// The race detector cannot see memory accesses made from assembly, so race
// builds fall back to sync/atomic.
const elisionHinted = true

// xacquireSwap stores v into *addr with an XACQUIRE-prefixed XCHG and returns
// the previous value.
//
//go:noescape
func xacquireSwap(addr *uint32, v uint32) uint32

// xreleaseStore clears *addr with an XRELEASE-prefixed MOV.
//
//go:noescape
func xreleaseStore(addr *uint32)
