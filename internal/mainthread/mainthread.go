// Package mainthread runs functions on the process's main OS thread.
//
// Window system calls must come from the main thread. The main goroutine is
// pinned to it in init; Loop then serves calls made from other goroutines.
package mainthread

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrStopped is returned by Call when no loop is running.
var ErrStopped = errors.New("main thread loop is not running")

func init() {
	runtime.LockOSThread()
}

type loop struct {
	calls chan func()
	stop  chan struct{}
}

var (
	mu      sync.Mutex
	current *loop
)

// Loop runs fn on a new goroutine and serves Call requests on the calling
// goroutine until fn returns. Call it from main. The context passed to fn is
// cancelled when Loop returns.
func Loop(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := &loop{calls: make(chan func()), stop: make(chan struct{})}
	mu.Lock()
	current = l
	mu.Unlock()
	defer func() {
		mu.Lock()
		if current == l {
			current = nil
		}
		mu.Unlock()
		close(l.stop)
	}()

	result := make(chan error, 1)
	go func() {
		result <- fn(ctx)
	}()

	for {
		select {
		case f := <-l.calls:
			f()
		case err := <-result:
			return err
		}
	}
}

// Call runs f on the loop's goroutine and waits for it to return. Calling it
// from inside a function already running on the loop deadlocks.
func Call(ctx context.Context, f func()) error {
	mu.Lock()
	l := current
	mu.Unlock()
	if l == nil {
		return ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		f()
	}

	select {
	case l.calls <- wrapped:
	case <-l.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}
