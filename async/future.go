// Package async provides a single assignment future for values produced by
// goroutines, such as results fetched from the execution layer.
package async

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrNilFuture is returned when waiting on a nil future.
var ErrNilFuture = errors.New("nil future")

// Future holds a value or an error that becomes available once. It is safe
// for concurrent use; only the first completion takes effect.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// NewFuture returns an incomplete future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future already completed with v.
func Completed[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Complete(v)
	return f
}

// Failed returns a future already completed with err.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.CompleteExceptionally(err)
	return f
}

// Go runs fn in a new goroutine and returns the future of its result. When
// ctx is already done fn is not run and the future fails with ctx's error.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	if err := ctx.Err(); err != nil {
		return Failed[T](err)
	}
	f := NewFuture[T]()
	go func() {
		v, err := fn(ctx)
		if err != nil {
			f.CompleteExceptionally(err)
			return
		}
		f.Complete(v)
	}()
	return f
}

// Complete sets the value and reports whether this call completed the future.
func (f *Future[T]) Complete(v T) bool {
	return f.finish(v, nil)
}

// CompleteExceptionally sets the error and reports whether this call
// completed the future.
func (f *Future[T]) CompleteExceptionally(err error) bool {
	if err == nil {
		err = errors.New("future completed with nil error")
	}
	var zero T
	return f.finish(zero, err)
}

func (f *Future[T]) finish(v T, err error) bool {
	completed := false
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
		completed = true
	})
	return completed
}

// Done is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// IsDone reports whether the future has completed.
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get waits for the future or for ctx to end.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if f == nil {
		return zero, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Then returns a future of fn applied to the value of f. Errors of f are
// passed through without calling fn.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := NewFuture[U]()
	go func() {
		<-f.done
		if f.err != nil {
			out.CompleteExceptionally(f.err)
			return
		}
		v, err := fn(f.val)
		if err != nil {
			out.CompleteExceptionally(err)
			return
		}
		out.Complete(v)
	}()
	return out
}
