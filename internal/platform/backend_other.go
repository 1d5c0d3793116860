//go:build !linux && !darwin

package platform

import "fmt"

// Open reports that no native backend exists for this platform.
func Open(opts Options) (Backend, error) {
	return nil, fmt.Errorf("window backend: %w on this platform", ErrNotImplemented)
}
