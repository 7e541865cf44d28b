package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/internal/ui"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/query"
	"github.com/samber/mo"
	logrus "github.com/sirupsen/logrus"
)

// addedFor is how long the "my list" toggle stays on.
const addedFor = 2 * time.Second

type addedResetMsg struct {
	gen int
}

type sectionDef struct {
	title, empty string
	resource     catalog.Resource
	genre        int
}

var (
	movieSections = []sectionDef{
		{title: "Trending Now", empty: "No trending movies found.", resource: catalog.TrendingMovies},
		{title: "Popular Movies", empty: "No popular movies found.", resource: catalog.PopularMovies},
		{title: "Top Rated", empty: "No top-rated movies found.", resource: catalog.TopRatedMovies},
		{title: "New Releases", empty: "No new releases found.", resource: catalog.NowPlaying},
		{title: "Action Movies", empty: "No action movies found.", resource: catalog.DiscoverMovies, genre: constant.GenreAction},
	}

	tvSections = []sectionDef{
		{title: "Trending TV", empty: "No trending TV shows found.", resource: catalog.TrendingTV},
		{title: "Popular TV Shows", empty: "No popular TV shows found.", resource: catalog.PopularTV},
		{title: "Top Rated TV", empty: "No top-rated TV shows found.", resource: catalog.TopRatedTV},
		{title: "Comedy Series", empty: "No comedy series found.", resource: catalog.DiscoverTV, genre: constant.GenreComedy},
	}
)

// mount builds the queries of the current route, subscribes to them and
// starts loading. Whatever the previous page watched is dropped first.
func (b *statefulBubble) mount() {
	b.unmount()
	b.gen++

	b.hero, b.details, b.search, b.sections = nil, nil, nil, nil
	b.focus = 0
	b.added = false
	b.viewportC.GotoTop()

	log.WithFields(logrus.Fields{"route": b.route.String(), "mount": b.gen}).Debug("mounting page")

	switch b.state {
	case homeState:
		b.mountListing(catalog.Movies, movieSections)
	case tvState:
		b.mountListing(catalog.Series, tvSections)
	case detailsState:
		b.mountDetails()
	case searchState:
		b.mountSearch()
	}

	b.sync()
}

func (b *statefulBubble) unmount() {
	for _, s := range b.subs {
		s.Unsubscribe()
	}
	b.subs = nil
}

// watch forwards changes of k to the program while the current page is mounted.
func (b *statefulBubble) watch(k cache.Key) {
	gen := b.gen
	b.subs = append(b.subs, b.queries.Manager().Subscribe(k, func(k cache.Key) {
		select {
		case b.updates <- updateMsg{gen: gen, key: k}:
		default:
			// A queued update re-reads every entry of the page anyway.
		}
	}))
}

func (b *statefulBubble) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return <-b.updates
	}
}

func (b *statefulBubble) watchSection(s *section) {
	b.sections = append(b.sections, s)
	b.watch(s.listing.Key())
	s.listing.Load(b.ctx)
}

func (b *statefulBubble) mountListing(kind catalog.Kind, defs []sectionDef) {
	b.hero = &hero{kind: kind, featured: b.queries.Featured(kind)}
	b.watch(b.hero.featured.Key())
	b.hero.featured.Load(b.ctx)

	for _, def := range defs {
		listing := b.queries.Listing(def.resource, catalog.Filters{Genre: def.genre})
		b.watchSection(b.newSection(def.title, def.empty, listing))
	}
	b.focusSection(0)
}

func (b *statefulBubble) mountDetails() {
	r := b.route
	d := &detailsPage{
		kind:    r.kind,
		id:      r.id,
		details: b.queries.Details(r.kind, r.id),
		videos:  b.queries.Videos(r.kind, r.id, false),
	}
	b.details = d

	b.watch(d.details.Key())
	b.watch(d.videos.Key())
	d.details.Load(b.ctx)
	d.videos.Load(b.ctx)

	similar := b.queries.Similar(r.kind, r.id)
	title := "More Like This"
	b.watchSection(b.newSection(title, fmt.Sprintf("No similar %ss found.", r.kind.Noun()), similar))
	b.focusSection(0)
}

func (b *statefulBubble) mountSearch() {
	r := b.route
	if r.searchType == "" {
		r.searchType = SearchAll
		b.route = r
	}

	s := &searchPage{query: r.query, searchType: r.searchType}
	b.search = s
	b.inputC.SetValue(r.query)
	b.inputC.CursorEnd()
	b.searchSuggestion = mo.None[string]()

	if r.query == "" {
		b.focusInput()
		return
	}

	filters := catalog.Filters{Query: r.query}
	if r.searchType.includes(catalog.Movies) {
		s.movies = b.newSection("Movies", fmt.Sprintf("No movies found for %q.", r.query), b.queries.Listing(catalog.SearchMovies, filters))
		s.movies.errLabel = "Error fetching movies"
		b.watchSection(s.movies)
	}
	if r.searchType.includes(catalog.Series) {
		s.tv = b.newSection("TV Shows", fmt.Sprintf("No TV shows found for %q.", r.query), b.queries.Listing(catalog.SearchTV, filters))
		s.tv.errLabel = "Error fetching TV shows"
		b.watchSection(s.tv)
	}
	b.focusSection(0)
}

// sync re-reads every entry of the mounted page and mounts dependent
// queries whose inputs became known.
func (b *statefulBubble) sync() {
	for _, s := range b.sections {
		s.sync()
	}

	if h := b.hero; h != nil && h.videos == nil {
		if item, ok := h.item().Get(); ok {
			h.videos = b.queries.Videos(item.Kind(), item.ItemID(), true)
			b.watch(h.videos.Key())
			h.videos.Load(b.ctx)
		}
	}

	if d := b.details; d != nil && d.cast == nil {
		if item, ok := d.item().Get(); ok && len(item.Info().Cast()) > 0 {
			d.cast = b.queries.Cast(item)
			b.watch(d.cast.Key())
			d.cast.Load(b.ctx)
		}
	}

	if b.state == detailsState {
		b.refreshViewport()
	}
}

// refresh invalidates every entry of the page and loads it again.
func (b *statefulBubble) refresh() tea.Cmd {
	if h := b.hero; h != nil {
		h.featured.Invalidate()
		h.featured.Load(b.ctx)
		if h.videos != nil {
			h.videos.Invalidate()
			h.videos.Load(b.ctx)
		}
	}

	if d := b.details; d != nil {
		d.details.Invalidate()
		d.details.Load(b.ctx)
		d.videos.Invalidate()
		d.videos.Load(b.ctx)
		if d.cast != nil {
			d.cast.Invalidate()
			d.cast.Load(b.ctx)
		}
	}

	for _, s := range b.sections {
		s.listing.Invalidate()
		s.listing.Load(b.ctx)
	}

	b.sync()
	return ui.Notify("Refreshing...", time.Second)
}

// currentTrailer is the trailer of the hero or the details page.
func (b *statefulBubble) currentTrailer() (catalog.Video, bool) {
	switch {
	case b.hero != nil:
		return b.hero.trailer().Get()
	case b.details != nil:
		return b.details.trailer().Get()
	default:
		return catalog.Video{}, false
	}
}

func (b *statefulBubble) playTrailer() tea.Cmd {
	trailer, ok := b.currentTrailer()
	if !ok {
		return ui.Notify("No trailer available", 2*time.Second)
	}

	url := trailer.URL()
	if url == "" {
		return ui.Notify("No trailer available", 2*time.Second)
	}

	log.WithFields(logrus.Fields{"url": url}).Info("opening trailer")
	if err := b.openURL(url); err != nil {
		log.Error(err)
		return ui.Notify("Could not open the trailer: "+err.Error(), 3*time.Second)
	}
	return ui.Notify("Opening trailer...", 2*time.Second)
}

// toggleAdded flips the "my list" marker, which switches itself off after a while.
func (b *statefulBubble) toggleAdded() tea.Cmd {
	b.added = !b.added
	b.addedGen++
	if !b.added {
		return nil
	}

	gen := b.addedGen
	return tea.Tick(addedFor, func(time.Time) tea.Msg {
		return addedResetMsg{gen: gen}
	})
}

// submitSearch runs the typed query on the current page.
func (b *statefulBubble) submitSearch() {
	q := b.inputC.Value()
	query.Remember(q, 1)

	r := b.route
	r.query = Search(q, r.searchType).query
	b.setState(r)
}

func (b *statefulBubble) cycleSearchType() {
	r := b.route
	r.searchType = r.searchType.next()
	b.setState(r)
}

func (b *statefulBubble) focusSection(i int) {
	if len(b.sections) == 0 {
		return
	}

	b.focus = max(0, min(i, len(b.sections)-1))
	for j, s := range b.sections {
		s.carousel.Focus(j == b.focus)
	}
	b.inputC.Blur()
	b.keymap.inputFocused = false
}

func (b *statefulBubble) focusInput() {
	b.focus = -1
	for _, s := range b.sections {
		s.carousel.Focus(false)
	}
	b.inputC.Focus()
	b.keymap.inputFocused = true
}

func (b *statefulBubble) focused() (*section, bool) {
	if b.focus < 0 || b.focus >= len(b.sections) {
		return nil, false
	}
	return b.sections[b.focus], true
}

// activate handles enter on the focused carousel.
func (b *statefulBubble) activate() tea.Cmd {
	s, ok := b.focused()
	if !ok {
		return nil
	}

	item, cmd := s.carousel.Activate()
	if selected, ok := item.Get(); ok {
		b.newState(Details(selected.Kind(), selected.ItemID()))
		return nil
	}
	return cmd
}
