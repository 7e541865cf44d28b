package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(clock *fakeClock) *Manager {
	return New(WithClock(clock.Now), WithRetryPolicy(RetryPolicy{Retries: 1}), WithGCTime(time.Minute))
}

// waitFor polls cond for up to a second.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestQuery(t *testing.T) {
	Convey("Given a manager and a counting fetcher", t, func() {
		clock := newFakeClock()
		m := newTestManager(clock)
		defer m.Close()
		ctx := context.Background()

		var calls atomic.Int32
		query := NewQuery(m, QueryOptions[string]{
			Key:       NewKey("movie-details", "550"),
			StaleTime: 15 * time.Minute,
			Fetch: func(ctx context.Context) (string, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "Fight Club", nil
			},
		})

		Convey("An untouched entry is idle", func() {
			So(query.Snapshot().Status, ShouldEqual, Idle)
			So(query.Snapshot().Data.IsAbsent(), ShouldBeTrue)
		})

		Convey("Concurrent fetches share one call", func() {
			var wg sync.WaitGroup
			results := make([]string, 10)
			for i := range results {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					v, err := query.Fetch(ctx)
					if err == nil {
						results[i] = v
					}
				}()
			}
			wg.Wait()

			So(calls.Load(), ShouldEqual, 1)
			for _, v := range results {
				So(v, ShouldEqual, "Fight Club")
			}
			So(query.Snapshot().Status, ShouldEqual, Success)
		})

		Convey("Load returns at once with a loading snapshot", func() {
			state := query.Load(ctx)
			So(state.Status, ShouldEqual, Loading)
			So(state.Fetching, ShouldBeTrue)
			So(waitFor(func() bool { return query.Snapshot().Status == Success }), ShouldBeTrue)
		})

		Convey("Reads inside the freshness window issue no call", func() {
			_, err := query.Fetch(ctx)
			So(err, ShouldBeNil)
			clock.Advance(14 * time.Minute)
			_, _ = query.Fetch(ctx)
			state := query.Load(ctx)
			So(state.Fetching, ShouldBeFalse)
			So(calls.Load(), ShouldEqual, 1)

			Convey("After expiry stale data is served while refetching", func() {
				clock.Advance(2 * time.Minute)
				state := query.Load(ctx)
				So(state.Status, ShouldEqual, Success)
				So(state.Fetching, ShouldBeTrue)
				So(state.Data.MustGet(), ShouldEqual, "Fight Club")

				_, err := query.Fetch(ctx)
				So(err, ShouldBeNil)
				So(calls.Load(), ShouldEqual, 2)
				So(query.Snapshot().Fetching, ShouldBeFalse)
			})
		})

		Convey("Invalidate forces the next load to refetch", func() {
			_, _ = query.Fetch(ctx)
			query.Invalidate()
			_, _ = query.Fetch(ctx)
			So(calls.Load(), ShouldEqual, 2)
		})

		Convey("Forever entries never go stale", func() {
			forever := NewQuery(m, QueryOptions[int]{
				Key:       NewKey("cast-portraits", "movie", "550"),
				StaleTime: Forever,
				Fetch: func(ctx context.Context) (int, error) {
					calls.Add(1)
					return 8, nil
				},
			})
			_, _ = forever.Fetch(ctx)
			clock.Advance(365 * 24 * time.Hour)
			_, _ = forever.Fetch(ctx)
			So(calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a fetcher that always fails", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()
		ctx := context.Background()

		var calls atomic.Int32
		boom := errors.New("boom")
		query := NewQuery(m, QueryOptions[string]{
			Key:       NewKey("movie-details", "1"),
			StaleTime: time.Minute,
			Fetch: func(ctx context.Context) (string, error) {
				calls.Add(1)
				return "", boom
			},
		})

		Convey("It fails after exactly one retry and stays quiet", func() {
			_, err := query.Fetch(ctx)
			So(errors.Is(err, boom), ShouldBeTrue)
			So(calls.Load(), ShouldEqual, 2)

			state := query.Snapshot()
			So(state.Status, ShouldEqual, Error)
			So(state.Err, ShouldEqual, boom)

			time.Sleep(30 * time.Millisecond)
			So(calls.Load(), ShouldEqual, 2)
		})

		Convey("A per-query policy overrides the manager", func() {
			noRetry := NewQuery(m, QueryOptions[string]{
				Key:   NewKey("movie-details", "2"),
				Retry: &RetryPolicy{Retries: 0},
				Fetch: func(ctx context.Context) (string, error) {
					calls.Add(1)
					return "", boom
				},
			})
			_, err := noRetry.Fetch(ctx)
			So(err, ShouldNotBeNil)
			So(calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given cached data and a failing refetch", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()
		ctx := context.Background()

		fail := atomic.Bool{}
		query := NewQuery(m, QueryOptions[string]{
			Key:       NewKey("featured-movie"),
			StaleTime: time.Hour,
			Fetch: func(ctx context.Context) (string, error) {
				if fail.Load() {
					return "", errors.New("offline")
				}
				return "Dune", nil
			},
		})
		_, err := query.Fetch(ctx)
		So(err, ShouldBeNil)

		Convey("The error is reported and the data kept", func() {
			fail.Store(true)
			query.Invalidate()
			_, err := query.Fetch(ctx)
			So(err, ShouldNotBeNil)

			state := query.Snapshot()
			So(state.Status, ShouldEqual, Error)
			So(state.Data.MustGet(), ShouldEqual, "Dune")
		})
	})

	Convey("A disabled query never fetches", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()

		var calls atomic.Int32
		query := NewQuery(m, QueryOptions[string]{
			Key:      NewKey("movie-details", "0"),
			Disabled: true,
			Fetch: func(ctx context.Context) (string, error) {
				calls.Add(1)
				return "x", nil
			},
		})

		So(query.Load(context.Background()).Status, ShouldEqual, Idle)
		v, err := query.Fetch(context.Background())
		So(err, ShouldBeNil)
		So(v, ShouldBeEmpty)
		So(calls.Load(), ShouldEqual, 0)
		So(m.Len(), ShouldEqual, 0)
	})

	Convey("Closing the manager cancels background fetches", t, func() {
		m := newTestManager(newFakeClock())
		query := NewQuery(m, QueryOptions[string]{
			Key: NewKey("slow"),
			Fetch: func(ctx context.Context) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		})

		query.Load(context.Background())
		m.Close()
		So(waitFor(func() bool { return query.Snapshot().Status == Error }), ShouldBeTrue)
		So(errors.Is(query.Snapshot().Err, context.Canceled), ShouldBeTrue)
	})

	Convey("A caller's context bounds only its own wait", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()

		release := make(chan struct{})
		query := NewQuery(m, QueryOptions[string]{
			Key:       NewKey("gated"),
			StaleTime: time.Minute,
			Fetch: func(ctx context.Context) (string, error) {
				<-release
				return "done", nil
			},
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := query.Fetch(ctx)
		So(err, ShouldEqual, context.Canceled)

		close(release)
		So(waitFor(func() bool { return query.Snapshot().Status == Success }), ShouldBeTrue)
	})
}

func TestSubscriptions(t *testing.T) {
	Convey("Given a subscribed query", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()
		ctx := context.Background()

		query := NewQuery(m, QueryOptions[int]{
			Key:       NewKey("trending-movies"),
			StaleTime: time.Minute,
			Fetch:     func(ctx context.Context) (int, error) { return 42, nil },
		})

		var got atomic.Int32
		sub := query.Subscribe(func(k Key) {
			if k == query.Key() {
				got.Add(1)
			}
		})

		Convey("Changes are delivered", func() {
			_, _ = query.Fetch(ctx)
			So(got.Load(), ShouldBeGreaterThanOrEqualTo, 2)
		})

		Convey("Nothing arrives after Unsubscribe", func() {
			sub.Unsubscribe()
			_, _ = query.Fetch(ctx)
			query.Invalidate()
			_, _ = query.Fetch(ctx)
			So(got.Load(), ShouldEqual, 0)

			Convey("But the cache was still filled", func() {
				So(query.Snapshot().Data.MustGet(), ShouldEqual, 42)
			})
		})

		Convey("InvalidateResource notifies every matching entry", func() {
			_, _ = query.Fetch(ctx)
			before := got.Load()
			m.InvalidateResource("trending-movies")
			So(got.Load(), ShouldEqual, before+1)

			Convey("Invalidating a stale entry again notifies nobody", func() {
				query.Invalidate()
				So(got.Load(), ShouldEqual, before+1)
			})
		})
	})

	Convey("Given a subscriber that invalidates its own key", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()

		query := NewQuery(m, QueryOptions[int]{
			Key:       NewKey("popular-movies"),
			StaleTime: time.Minute,
			Fetch:     func(ctx context.Context) (int, error) { return 7, nil },
		})

		var (
			depth, deepest atomic.Int32
			calls          atomic.Int32
		)
		sub := query.Subscribe(func(Key) {
			calls.Add(1)
			if d := depth.Add(1); d > deepest.Load() {
				deepest.Store(d)
			}
			query.Invalidate()
			depth.Add(-1)
		})
		defer sub.Unsubscribe()

		Convey("Load returns and the deliveries never nest", func() {
			returned := make(chan struct{})
			go func() {
				query.Load(context.Background())
				close(returned)
			}()

			var ok bool
			select {
			case <-returned:
				ok = true
			case <-time.After(2 * time.Second):
			}
			So(ok, ShouldBeTrue)
			So(waitFor(func() bool { return calls.Load() >= 2 }), ShouldBeTrue)
			So(deepest.Load(), ShouldEqual, 1)
		})
	})

	Convey("Unsubscribe waits for a delivery in progress", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()

		k := NewKey("top-rated-movies")
		entered, release := make(chan struct{}), make(chan struct{})
		var unsubscribed, lateCall atomic.Bool

		sub := m.Subscribe(k, func(Key) {
			if unsubscribed.Load() {
				lateCall.Store(true)
			}
			select {
			case entered <- struct{}{}:
				<-release
			default:
			}
		})

		go m.update(k, func(e *entry) {})
		<-entered

		done := make(chan struct{})
		go func() {
			sub.Unsubscribe()
			unsubscribed.Store(true)
			close(done)
		}()

		var early bool
		select {
		case <-done:
			early = true
		case <-time.After(50 * time.Millisecond):
		}
		So(early, ShouldBeFalse)

		close(release)
		<-done
		m.update(k, func(e *entry) {})
		So(lateCall.Load(), ShouldBeFalse)
	})
}

func TestSweep(t *testing.T) {
	Convey("Given entries of different ages", t, func() {
		clock := newFakeClock()
		m := newTestManager(clock)
		defer m.Close()
		ctx := context.Background()

		newQuery := func(resource string, stale time.Duration) *Query[int] {
			return NewQuery(m, QueryOptions[int]{
				Key:       NewKey(resource),
				StaleTime: stale,
				Fetch:     func(ctx context.Context) (int, error) { return 1, nil },
			})
		}

		old := newQuery("old", time.Minute)
		watched := newQuery("watched", time.Minute)
		forever := newQuery("forever", Forever)
		for _, q := range []*Query[int]{old, watched, forever} {
			_, err := q.Fetch(ctx)
			So(err, ShouldBeNil)
		}
		sub := watched.Subscribe(func(Key) {})
		defer sub.Unsubscribe()

		Convey("Nothing is collected while fresh", func() {
			So(m.Sweep(), ShouldEqual, 0)
			So(m.Len(), ShouldEqual, 3)
		})

		Convey("Unobserved stale entries are collected", func() {
			clock.Advance(5 * time.Minute)
			So(m.Sweep(), ShouldEqual, 1)
			So(old.Snapshot().Status, ShouldEqual, Idle)
			So(watched.Snapshot().Status, ShouldEqual, Success)
			So(forever.Snapshot().Status, ShouldEqual, Success)
		})
	})

	Convey("CollectGarbage stops with its context", t, func() {
		m := New()
		defer m.Close()
		ctx, cancel := context.WithCancel(context.Background())
		m.CollectGarbage(ctx, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		cancel()
		So(m.Len(), ShouldEqual, 0)
	})
}

func TestKey(t *testing.T) {
	Convey("Keys compare by resource and params", t, func() {
		So(NewKey("search-movies", "query=matrix"), ShouldEqual, NewKey("search-movies", "query=matrix"))
		So(NewKey("search-movies", "query=matrix"), ShouldNotEqual, NewKey("search-tv", "query=matrix"))
		So(NewKey("similar-movies", "id=550").String(), ShouldEqual, "similar-movies?id=550")
		So(NewKey("featured-movie").String(), ShouldEqual, "featured-movie")
	})
}
