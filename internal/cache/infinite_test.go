package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marquee-cli/marquee/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

// pager serves numbered pages of ints: page p holds (p-1)*size+1 .. p*size.
type pager struct {
	size, total int

	mu    sync.Mutex
	calls []int
	fail  map[int]bool
	gate  map[int]chan struct{}
}

func newPager(size, total int) *pager {
	return &pager{size: size, total: total, fail: map[int]bool{}, gate: map[int]chan struct{}{}}
}

func (p *pager) fetch(ctx context.Context, page int) (*catalog.Page[int], error) {
	p.mu.Lock()
	p.calls = append(p.calls, page)
	failing := p.fail[page]
	gate := p.gate[page]
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if failing {
		return nil, errors.New("page failed")
	}

	results := make([]int, 0, p.size)
	for i := 1; i <= p.size; i++ {
		results = append(results, (page-1)*p.size+i)
	}
	return &catalog.Page[int]{Page: page, Results: results, TotalPages: p.total, TotalResults: p.total * p.size}, nil
}

func (p *pager) called() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.calls...)
}

func (p *pager) setFail(page int, fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail[page] = fail
}

func (p *pager) hold(page int) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan struct{})
	p.gate[page] = ch
	return ch
}

func sequence(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestInfinite(t *testing.T) {
	Convey("Given popular movies with 20 items per page and 5 pages", t, func() {
		clock := newFakeClock()
		m := newTestManager(clock)
		defer m.Close()
		ctx := context.Background()

		p := newPager(20, 5)
		listing := NewInfinite(m, InfiniteOptions[int]{
			Key:       NewKey("popular-movies"),
			StaleTime: 10 * time.Minute,
			FetchPage: p.fetch,
		})

		Convey("LoadMore before the first page succeeds does nothing", func() {
			So(listing.LoadMore(ctx), ShouldBeFalse)
			So(p.called(), ShouldBeEmpty)
		})

		Convey("Page 1 then LoadMore yields 40 items in order", func() {
			state, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)
			So(len(state.Items()), ShouldEqual, 20)
			So(state.HasNextPage, ShouldBeTrue)
			So(state.Status, ShouldEqual, Success)

			state, err = listing.FetchMore(ctx)
			So(err, ShouldBeNil)
			So(state.Items(), ShouldResemble, sequence(1, 40))
			So(len(state.Pages), ShouldEqual, 2)
			So(state.Pages[1].Page, ShouldEqual, 2)
			So(p.called(), ShouldResemble, []int{1, 2})
		})

		Convey("Concurrent LoadMore calls are coalesced", func() {
			_, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)

			release := p.hold(2)
			So(listing.LoadMore(ctx), ShouldBeTrue)
			So(listing.Snapshot().Status, ShouldEqual, LoadingMore)
			So(listing.Snapshot().FetchingMore, ShouldBeTrue)
			So(listing.LoadMore(ctx), ShouldBeFalse)
			So(listing.LoadMore(ctx), ShouldBeFalse)
			close(release)

			So(waitFor(func() bool { return listing.Snapshot().Status == Success }), ShouldBeTrue)
			So(p.called(), ShouldResemble, []int{1, 2})
			So(len(listing.Snapshot().Items()), ShouldEqual, 40)
		})

		Convey("FetchMore joins a load-more in flight", func() {
			_, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)

			release := p.hold(2)
			So(listing.LoadMore(ctx), ShouldBeTrue)

			done := make(chan InfiniteState[int], 1)
			go func() {
				state, _ := listing.FetchMore(ctx)
				done <- state
			}()
			time.Sleep(10 * time.Millisecond)
			close(release)

			state := <-done
			So(len(state.Items()), ShouldEqual, 40)
			So(p.called(), ShouldResemble, []int{1, 2})
		})

		Convey("A failed load-more keeps the loaded pages", func() {
			_, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)

			p.setFail(2, true)
			state, err := listing.FetchMore(ctx)
			So(err, ShouldNotBeNil)
			So(state.Status, ShouldEqual, Error)
			So(len(state.Items()), ShouldEqual, 20)
			So(p.called(), ShouldResemble, []int{1, 2, 2})

			Convey("And LoadMore stays off until a refetch succeeds", func() {
				So(listing.LoadMore(ctx), ShouldBeFalse)
			})
		})

		Convey("A stale listing refetches every loaded page in order", func() {
			_, _ = listing.Fetch(ctx)
			_, _ = listing.FetchMore(ctx)
			_, _ = listing.FetchMore(ctx)

			clock.Advance(11 * time.Minute)
			state := listing.Load(ctx)
			So(state.Fetching, ShouldBeTrue)
			So(len(state.Items()), ShouldEqual, 60)

			state, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)
			So(state.Items(), ShouldResemble, sequence(1, 60))
			So(p.called(), ShouldResemble, []int{1, 2, 3, 1, 2, 3})
		})

		Convey("A failed refetch swaps nothing in", func() {
			_, _ = listing.Fetch(ctx)
			_, _ = listing.FetchMore(ctx)

			p.setFail(2, true)
			listing.Invalidate()
			state, err := listing.Fetch(ctx)
			So(err, ShouldNotBeNil)
			So(state.Status, ShouldEqual, Error)
			So(state.Items(), ShouldResemble, sequence(1, 40))
		})
	})

	Convey("Given a listing with a single page", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()
		ctx := context.Background()

		p := newPager(3, 1)
		listing := NewInfinite(m, InfiniteOptions[int]{Key: NewKey("top-rated-tv"), StaleTime: time.Minute, FetchPage: p.fetch})

		Convey("LoadMore at the last page issues no call", func() {
			state, err := listing.Fetch(ctx)
			So(err, ShouldBeNil)
			So(state.HasNextPage, ShouldBeFalse)
			So(listing.LoadMore(ctx), ShouldBeFalse)
			So(p.called(), ShouldResemble, []int{1})
		})
	})

	Convey("Two mounts of the same listing share one call", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()
		ctx := context.Background()

		var calls atomic.Int32
		fetch := func(ctx context.Context, page int) (*catalog.Page[string], error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return &catalog.Page[string]{Page: 1, Results: []string{"Dune", "Alien"}, TotalPages: 3}, nil
		}
		mount := func() *Infinite[string] {
			return NewInfinite(m, InfiniteOptions[string]{Key: NewKey("trending-movies"), StaleTime: 5 * time.Minute, FetchPage: fetch})
		}

		first, second := mount(), mount()
		first.Load(ctx)
		second.Load(ctx)

		a, errA := first.Fetch(ctx)
		b, errB := second.Fetch(ctx)
		So(errA, ShouldBeNil)
		So(errB, ShouldBeNil)
		So(calls.Load(), ShouldEqual, 1)
		So(a.Items(), ShouldResemble, b.Items())
		So(a.Items(), ShouldResemble, []string{"Dune", "Alien"})
	})

	Convey("A disabled listing stays idle", t, func() {
		m := newTestManager(newFakeClock())
		defer m.Close()

		p := newPager(1, 1)
		listing := NewInfinite(m, InfiniteOptions[int]{Key: NewKey("search-movies"), Disabled: true, FetchPage: p.fetch})
		So(listing.Load(context.Background()).Status, ShouldEqual, Idle)
		So(listing.LoadMore(context.Background()), ShouldBeFalse)
		So(p.called(), ShouldBeEmpty)
	})
}

func TestItems(t *testing.T) {
	Convey("Flattening keeps length and order", t, func() {
		pages := []*catalog.Page[int]{
			{Page: 1, Results: []int{1, 2, 3}},
			{Page: 2, Results: []int{}},
			{Page: 3, Results: []int{4, 5}},
		}
		state := InfiniteState[int]{Pages: pages}

		total := 0
		for _, p := range pages {
			total += len(p.Results)
		}
		So(len(state.Items()), ShouldEqual, total)
		So(state.Items(), ShouldResemble, []int{1, 2, 3, 4, 5})
		So(InfiniteState[int]{}.Items(), ShouldBeEmpty)
	})
}
