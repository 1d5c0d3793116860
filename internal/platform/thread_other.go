//go:build !linux && !darwin

package platform

// IsMainThread always reports true where no native backend exists.
func IsMainThread() bool {
	return true
}
