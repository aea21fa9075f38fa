package api

import (
	"context"
	"sync"
)

// Promise is a one-shot result. It settles exactly once, and every Then
// registration fires exactly one of its two continuations exactly once.
// Continuations run on the settling goroutine (or the caller's, when attached
// after settlement); UI code should hand results to its own loop instead of
// mutating state from a continuation.
type Promise[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	settled  bool
	value    T
	err      error
	handlers []func()
}

// NewPromise creates an unsettled promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolve settles the promise with v. Returns false if it was already settled.
func (p *Promise[T]) Resolve(v T) bool {
	return p.settle(v, nil)
}

// Reject settles the promise with err. Returns false if it was already settled.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.settle(zero, err)
}

func (p *Promise[T]) settle(v T, err error) bool {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return false
	}
	p.settled = true
	p.value = v
	p.err = err
	handlers := p.handlers
	p.handlers = nil
	close(p.done)
	p.mu.Unlock()

	for _, h := range handlers {
		h()
	}
	return true
}

// Then registers continuations. Either may be nil.
func (p *Promise[T]) Then(onSuccess func(T), onFailure func(error)) *Promise[T] {
	fire := func() {
		if p.err != nil {
			if onFailure != nil {
				onFailure(p.err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(p.value)
		}
	}

	p.mu.Lock()
	if !p.settled {
		p.handlers = append(p.handlers, fire)
		p.mu.Unlock()
		return p
	}
	p.mu.Unlock()

	fire()
	return p
}

// Done is closed once the promise settles.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise settles or ctx is done.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
