package assets

import (
	"context"
	"image"
	"sync"
)

// Future is a single-shot completion for an asynchronous load. It completes
// exactly once; later completions are dropped.
type Future struct {
	done chan struct{}
	once sync.Once

	tex image.Image
	err error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// NewFuture returns a pending future and the function that completes it.
func NewFuture() (*Future, func(tex image.Image, err error)) {
	f := newFuture()
	return f, f.complete
}

// Resolved returns an already-completed future.
func Resolved(tex image.Image, err error) *Future {
	f := newFuture()
	f.complete(tex, err)
	return f
}

func (f *Future) complete(tex image.Image, err error) {
	f.once.Do(func() {
		f.tex, f.err = tex, err
		close(f.done)
	})
}

// Done is closed once the load finished, successfully or not.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result is the outcome of a finished load.
type Result struct {
	Texture image.Image
	Err     error
}

// Poll returns the result without blocking. ok is false while the load is
// still running.
func (f *Future) Poll() (res Result, ok bool) {
	select {
	case <-f.done:
		return Result{Texture: f.tex, Err: f.err}, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the load finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-f.done:
		return f.tex, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
