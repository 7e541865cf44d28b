package cache

import (
	"context"
	"time"

	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

// QueryOptions configures a single-value query.
type QueryOptions[T any] struct {
	Key       Key
	Fetch     func(ctx context.Context) (T, error)
	StaleTime time.Duration
	// Disabled queries never fetch and report Idle.
	Disabled bool
	// Retry overrides the manager policy.
	Retry *RetryPolicy
}

// State is a snapshot of a single-value entry.
type State[T any] struct {
	Data      mo.Option[T]
	Status    Status
	Err       error
	Fetching  bool
	UpdatedAt time.Time
}

// Query is a typed view of one cache entry. It holds no state of its own.
type Query[T any] struct {
	m    *Manager
	opts QueryOptions[T]
}

// NewQuery binds opts to m. Nothing is fetched until the query is read or loaded.
func NewQuery[T any](m *Manager, opts QueryOptions[T]) *Query[T] {
	return &Query[T]{m: m, opts: opts}
}

func (q *Query[T]) Key() Key {
	return q.opts.Key
}

func (q *Query[T]) policy() RetryPolicy {
	if q.opts.Retry != nil {
		return *q.opts.Retry
	}
	return q.m.retry
}

// Snapshot reads the entry without starting anything.
func (q *Query[T]) Snapshot() State[T] {
	if q.opts.Disabled {
		return State[T]{Status: Idle, Data: mo.None[T]()}
	}

	q.m.mu.Lock()
	defer q.m.mu.Unlock()

	e, ok := q.m.entries[q.opts.Key]
	if !ok {
		return State[T]{Status: Idle, Data: mo.None[T]()}
	}
	return stateOf[T](e)
}

func stateOf[T any](e *entry) State[T] {
	s := State[T]{
		Status:    e.status,
		Err:       e.err,
		Fetching:  e.fetching,
		UpdatedAt: e.updatedAt,
		Data:      mo.None[T](),
	}
	if v, ok := e.value.(T); ok {
		s.Data = mo.Some(v)
	}
	return s
}

// Load makes sure the entry is fresh without waiting. Fresh entries are
// returned as is. Otherwise a background fetch starts, or is joined, and the
// current snapshot is returned, stale data included.
func (q *Query[T]) Load(ctx context.Context) State[T] {
	if q.opts.Disabled {
		return q.Snapshot()
	}
	q.start()
	return q.Snapshot()
}

// Fetch is Load that waits for the fetch to settle.
func (q *Query[T]) Fetch(ctx context.Context) (T, error) {
	var zero T
	if q.opts.Disabled {
		return zero, nil
	}

	ch := q.start()
	if ch == nil {
		return q.Snapshot().Data.OrEmpty(), nil
	}

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		v, _ := r.Val.(T)
		return v, r.Err
	}
}

// Subscribe is Manager.Subscribe for this query's key.
func (q *Query[T]) Subscribe(fn func(Key)) *Subscription {
	return q.m.Subscribe(q.opts.Key, fn)
}

func (q *Query[T]) Invalidate() {
	q.m.Invalidate(q.opts.Key)
}

// start begins or joins the fetch of a stale entry. It returns nil when the
// entry is fresh.
func (q *Query[T]) start() <-chan singleflight.Result {
	m, k := q.m, q.opts.Key

	m.mu.Lock()
	e := m.entryLocked(k)
	e.staleTime = q.opts.StaleTime
	if e.fresh(m.now()) {
		m.mu.Unlock()
		return nil
	}
	gen := e.settled
	began := m.beginLocked(e)
	subs := m.subscribersLocked(e)
	m.mu.Unlock()

	if began {
		notify(k, subs)
	}

	policy := q.policy()
	return m.group.DoChan(flightKey(k, 0), func() (any, error) {
		// A flight that settled between our check and DoChan already
		// answered this caller.
		if v, done, err := m.settledSince(k, gen); done {
			return v, err
		}

		m.logger(k).Debug("fetching")
		v, err := withRetry(m.ctx, policy, k, q.opts.Fetch)

		m.update(k, func(e *entry) {
			e.fetching = false
			e.settled++
			if err != nil {
				e.status = Error
				e.err = err
				return
			}
			e.value = v
			e.status = Success
			e.err = nil
			e.stale = false
			e.updatedAt = m.now()
		})

		if err != nil {
			m.logger(k).Warnf("fetch failed: %v", err)
		}
		return v, err
	})
}
