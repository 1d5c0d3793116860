//go:build linux

package platform

import "golang.org/x/sys/unix"

// IsMainThread reports whether the caller runs on the process's initial
// thread. Goroutines that need this must have called runtime.LockOSThread.
func IsMainThread() bool {
	return unix.Gettid() == unix.Getpid()
}
