//go:build linux

package bench

import "golang.org/x/sys/unix"

// bindThread pins the calling OS thread to the id-th CPU it is allowed to run
// on, wrapping around when there are more workers than CPUs. The caller
// must have locked the goroutine to its thread.
func bindThread(id int) error {
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return err
	}
	n := allowed.Count()
	if n == 0 {
		return nil
	}
	target := id % n
	for cpu := 0; ; cpu++ {
		if !allowed.IsSet(cpu) {
			continue
		}
		if target == 0 {
			var set unix.CPUSet
			set.Set(cpu)
			return unix.SchedSetaffinity(0, &set)
		}
		target--
	}
}
