//go:build darwin

package platform

/*
#include <pthread.h>
*/
import "C"

// IsMainThread reports whether the caller runs on the process's main thread,
// the only thread AppKit and the accessibility API accept calls from.
func IsMainThread() bool {
	return C.pthread_main_np() != 0
}
