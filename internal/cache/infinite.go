package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// InfiniteOptions configures a paginated query.
type InfiniteOptions[T any] struct {
	Key       Key
	FetchPage func(ctx context.Context, page int) (*catalog.Page[T], error)
	StaleTime time.Duration
	Disabled  bool
	Retry     *RetryPolicy
}

// InfiniteState is a snapshot of a paginated entry. Pages are contiguous from 1.
type InfiniteState[T any] struct {
	Pages        []*catalog.Page[T]
	HasNextPage  bool
	Status       Status
	Err          error
	Fetching     bool
	FetchingMore bool
	UpdatedAt    time.Time
}

// Items flattens the pages in page order, keeping provider order within a page.
func (s InfiniteState[T]) Items() []T {
	return lo.FlatMap(s.Pages, func(p *catalog.Page[T], _ int) []T {
		return p.Results
	})
}

// Loading reports a first load with nothing to show yet.
func (s InfiniteState[T]) Loading() bool {
	return len(s.Pages) == 0 && (s.Status == Loading || s.Fetching)
}

// Infinite is a typed view of a paginated cache entry.
type Infinite[T any] struct {
	m    *Manager
	opts InfiniteOptions[T]
}

// NewInfinite binds opts to m. Nothing is fetched until the first page is loaded.
func NewInfinite[T any](m *Manager, opts InfiniteOptions[T]) *Infinite[T] {
	return &Infinite[T]{m: m, opts: opts}
}

func (q *Infinite[T]) Key() Key {
	return q.opts.Key
}

func (q *Infinite[T]) policy() RetryPolicy {
	if q.opts.Retry != nil {
		return *q.opts.Retry
	}
	return q.m.retry
}

func pagesOf[T any](e *entry) []*catalog.Page[T] {
	pages, _ := e.value.([]*catalog.Page[T])
	return pages
}

func (q *Infinite[T]) Snapshot() InfiniteState[T] {
	if q.opts.Disabled {
		return InfiniteState[T]{Status: Idle}
	}

	q.m.mu.Lock()
	defer q.m.mu.Unlock()

	e, ok := q.m.entries[q.opts.Key]
	if !ok {
		return InfiniteState[T]{Status: Idle}
	}

	pages := pagesOf[T](e)
	return InfiniteState[T]{
		Pages:        pages,
		HasNextPage:  len(pages) > 0 && pages[len(pages)-1].HasNext(),
		Status:       e.status,
		Err:          e.err,
		Fetching:     e.fetching,
		FetchingMore: e.loadingMore,
		UpdatedAt:    e.updatedAt,
	}
}

// Load makes sure page 1 (or every loaded page, when stale) is fresh
// without waiting, and returns the current snapshot.
func (q *Infinite[T]) Load(ctx context.Context) InfiniteState[T] {
	if !q.opts.Disabled {
		q.start()
	}
	return q.Snapshot()
}

// Fetch is Load that waits for the fetch to settle.
func (q *Infinite[T]) Fetch(ctx context.Context) (InfiniteState[T], error) {
	if q.opts.Disabled {
		return q.Snapshot(), nil
	}

	ch := q.start()
	if ch == nil {
		return q.Snapshot(), nil
	}

	select {
	case <-ctx.Done():
		return q.Snapshot(), ctx.Err()
	case r := <-ch:
		return q.Snapshot(), r.Err
	}
}

// LoadMore requests the page after the last loaded one. It does nothing and
// reports false unless the entry succeeded, has a next page and is not
// already loading one.
func (q *Infinite[T]) LoadMore(ctx context.Context) bool {
	_, started := q.loadMore()
	return started
}

// FetchMore is LoadMore that waits. A load-more already in flight is joined.
func (q *Infinite[T]) FetchMore(ctx context.Context) (InfiniteState[T], error) {
	ch, _ := q.loadMore()
	if ch == nil {
		return q.Snapshot(), nil
	}

	select {
	case <-ctx.Done():
		return q.Snapshot(), ctx.Err()
	case r := <-ch:
		return q.Snapshot(), r.Err
	}
}

func (q *Infinite[T]) Subscribe(fn func(Key)) *Subscription {
	return q.m.Subscribe(q.opts.Key, fn)
}

func (q *Infinite[T]) Invalidate() {
	q.m.Invalidate(q.opts.Key)
}

func (q *Infinite[T]) fetchPage(ctx context.Context, page int) (*catalog.Page[T], error) {
	p, err := withRetry(ctx, q.policy(), q.opts.Key, func(ctx context.Context) (*catalog.Page[T], error) {
		return q.opts.FetchPage(ctx, page)
	})
	if err == nil && p == nil {
		err = fmt.Errorf("%s: page %d came back empty", q.opts.Key, page)
	}
	return p, err
}

// start begins or joins a full load. Stale entries refetch every loaded page
// in order and swap them in together.
func (q *Infinite[T]) start() <-chan singleflight.Result {
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

	return m.group.DoChan(flightKey(k, 0), func() (any, error) {
		if v, done, err := m.settledSince(k, gen); done {
			return v, err
		}

		m.mu.Lock()
		want := max(1, len(pagesOf[T](m.entryLocked(k))))
		m.mu.Unlock()

		m.logger(k).Debugf("fetching %d page(s)", want)
		fetched := make([]*catalog.Page[T], 0, want)
		var err error
		for n := 1; n <= want; n++ {
			var page *catalog.Page[T]
			page, err = q.fetchPage(m.ctx, n)
			if err != nil {
				break
			}
			fetched = append(fetched, page)
			if !page.HasNext() {
				break
			}
		}

		m.update(k, func(e *entry) {
			e.fetching = false
			e.settled++
			if err != nil {
				e.status = Error
				e.err = err
				return
			}

			// Pages appended by a load-more during the refetch survive the swap.
			current := pagesOf[T](e)
			if len(current) > len(fetched) && fetched[len(fetched)-1].HasNext() {
				fetched = append(fetched, current[len(fetched):]...)
			}

			e.value = fetched
			e.err = nil
			e.stale = false
			e.updatedAt = m.now()
			if e.loadingMore {
				e.status = LoadingMore
			} else {
				e.status = Success
			}
		})

		if err != nil {
			m.logger(k).Warnf("fetch failed: %v", err)
		}
		return nil, err
	})
}

// loadMore starts the next page, or joins one already loading.
func (q *Infinite[T]) loadMore() (<-chan singleflight.Result, bool) {
	if q.opts.Disabled {
		return nil, false
	}
	m, k := q.m, q.opts.Key

	m.mu.Lock()
	e, ok := m.entries[k]
	if !ok {
		m.mu.Unlock()
		return nil, false
	}
	e.lastUsed = m.now()

	pages := pagesOf[T](e)
	next := len(pages) + 1

	if e.loadingMore {
		m.mu.Unlock()
		m.logger(k).Debug("load more already in flight")
		return m.group.DoChan(flightKey(k, next), q.moreFn(next)), false
	}

	if e.status != Success || len(pages) == 0 || !pages[len(pages)-1].HasNext() {
		m.mu.Unlock()
		return nil, false
	}

	e.loadingMore = true
	e.status = LoadingMore
	subs := m.subscribersLocked(e)
	m.mu.Unlock()

	notify(k, subs)
	return m.group.DoChan(flightKey(k, next), q.moreFn(next)), true
}

func (q *Infinite[T]) moreFn(next int) func() (any, error) {
	m, k := q.m, q.opts.Key

	return func() (any, error) {
		m.mu.Lock()
		e := m.entryLocked(k)
		if !e.loadingMore || len(pagesOf[T](e)) != next-1 {
			err := e.err
			m.mu.Unlock()
			return nil, err
		}
		m.mu.Unlock()

		m.logger(k).Debugf("fetching page %d", next)
		page, err := q.fetchPage(m.ctx, next)

		m.update(k, func(e *entry) {
			e.loadingMore = false
			if err != nil {
				e.status = Error
				e.err = err
				return
			}

			if pages := pagesOf[T](e); len(pages) == next-1 {
				e.value = append(pages[:len(pages):len(pages)], page)
			}
			e.err = nil
			e.status = Success
		})

		if err != nil {
			m.logger(k).Warnf("page %d failed: %v", next, err)
		}
		return page, err
	}
}
