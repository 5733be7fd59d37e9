package fetch

import (
	"context"
	"sync"
)

// Callbacks receive the outcome of a mutation. OnSuccess or OnError fires
// exactly once per Mutate call, and OnSettled always fires last regardless of
// outcome.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnError   func(error)
	OnSettled func()
}

// Mutation wraps a side-effecting call with loading/data/error state
// tracking, the useMutation analog.
type Mutation[V, T any] struct {
	fn func(ctx context.Context, vars V) (T, error)
	cb Callbacks[T]

	mu      sync.Mutex
	loading bool
	data    *T
	err     error
}

// NewMutation creates a mutation around fn.
func NewMutation[V, T any](fn func(ctx context.Context, vars V) (T, error), cb Callbacks[T]) *Mutation[V, T] {
	return &Mutation[V, T]{fn: fn, cb: cb}
}

// Mutate runs the mutation, updates state, and dispatches callbacks.
func (m *Mutation[V, T]) Mutate(ctx context.Context, vars V) (T, error) {
	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()

	data, err := m.fn(ctx, vars)

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.err = err
		m.data = nil
	} else {
		m.data = &data
	}
	m.mu.Unlock()

	if err != nil {
		if m.cb.OnError != nil {
			m.cb.OnError(err)
		}
	} else if m.cb.OnSuccess != nil {
		m.cb.OnSuccess(data)
	}
	if m.cb.OnSettled != nil {
		m.cb.OnSettled()
	}
	return data, err
}

// State returns the current loading flag, last result, and last error.
func (m *Mutation[V, T]) State() (loading bool, data *T, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading, m.data, m.err
}
