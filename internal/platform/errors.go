package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFocusedWindow means no frontmost window could be found.
	ErrNoFocusedWindow = errors.New("cannot find the focused window")
	// ErrWrongThread means a window-system call was made off the main thread.
	ErrWrongThread = errors.New("must be called on the main thread")
	// ErrNoDisplay means zero displays are attached.
	ErrNoDisplay = errors.New("no display attached")
	// ErrTooManyWorkspaces means the requested workspace has no hot-key slot.
	ErrTooManyWorkspaces = errors.New("only workspaces 1 to 16 are supported")
	// ErrNotImplemented marks behavior that is deliberately unsupported.
	ErrNotImplemented = errors.New("not implemented")
	// ErrPlatformCall is matched by every *CallError.
	ErrPlatformCall = errors.New("platform call failed")
)

// CallError carries the status code of a failed window-system call.
type CallError struct {
	Op   string
	Code int
	Err  error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed (code %d): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed (code %d)", e.Op, e.Code)
}

// Is makes errors.Is(err, ErrPlatformCall) hold for every CallError.
func (e *CallError) Is(target error) bool {
	return target == ErrPlatformCall
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// CallFailed wraps err as a failed platform call named op.
func CallFailed(op string, code int, err error) error {
	return &CallError{Op: op, Code: code, Err: err}
}
