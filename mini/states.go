package mini

import (
	"fmt"
	"strings"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/query"
	"github.com/marquee-cli/marquee/style"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

type state int

const (
	sectionSelectState state = iota + 1
	searchState
	listState
	detailsState
	quitState
)

const (
	loadMore    = "Load more"
	back        = "Back"
	quit        = "Quit"
	retry       = "Retry"
	playTrailer = "Play trailer"
	similar     = "More like this"
)

type section struct {
	title    string
	resource catalog.Resource
	genre    int
}

var sections = []section{
	{title: "Trending Movies", resource: catalog.TrendingMovies},
	{title: "Popular Movies", resource: catalog.PopularMovies},
	{title: "Top Rated Movies", resource: catalog.TopRatedMovies},
	{title: "New Releases", resource: catalog.NowPlaying},
	{title: "Action Movies", resource: catalog.DiscoverMovies, genre: constant.GenreAction},
	{title: "Trending TV", resource: catalog.TrendingTV},
	{title: "Popular TV Shows", resource: catalog.PopularTV},
	{title: "Top Rated TV", resource: catalog.TopRatedTV},
	{title: "Comedy Series", resource: catalog.DiscoverTV, genre: constant.GenreComedy},
	{title: "Search Movies", resource: catalog.SearchMovies},
	{title: "Search TV Shows", resource: catalog.SearchTV},
}

func (m *mini) handleSectionSelectState() error {
	options := lo.Map(sections, func(s section, _ int) string { return s.title })
	options = append(options, quit)

	i, err := m.prompt.Select("Browse", options)
	if err != nil {
		return err
	}

	if i >= len(sections) {
		m.setState(quitState)
		return nil
	}

	s := sections[i]
	if s.resource == catalog.SearchMovies || s.resource == catalog.SearchTV {
		m.newState(searchState)
		m.listingTitle = s.title
		m.searchResource = s.resource
		return nil
	}

	m.newState(listState)
	m.listingTitle = s.title
	m.listing = m.queries.Listing(s.resource, catalog.Filters{Genre: s.genre})
	return nil
}

func (m *mini) handleSearchState() error {
	q, err := m.prompt.Input(m.listingTitle, query.SuggestMany)
	if err != nil {
		return err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		fail(m.out, "Search query cannot be empty")
		return nil
	}
	query.Remember(q, 1)

	// Going back from the results skips the search prompt.
	m.listingTitle = fmt.Sprintf("Results for %q", q)
	m.listing = m.queries.Listing(m.searchResource, catalog.Filters{Query: q})
	m.setState(listState)
	return nil
}

func (m *mini) handleListState() error {
	erase := m.progress("Loading " + m.listingTitle + "..")
	st, err := m.listing.Fetch(m.ctx)
	erase()
	if err == nil {
		err = st.Err
	}

	if err != nil {
		fail(m.out, err.Error())
		return m.offerRetry()
	}

	items := st.Items()
	if len(items) == 0 {
		fail(m.out, "No results found")
		m.previousState()
		return nil
	}

	options := lo.Map(items, func(item catalog.MediaItem, _ int) string {
		return label(item)
	})
	if st.HasNextPage {
		options = append(options, loadMore)
	}
	options = append(options, back, quit)

	if last, ok := lo.Last(st.Pages); ok {
		title(m.out, fmt.Sprintf("%s (%d of %d)", m.listingTitle, len(items), last.TotalResults))
	}

	i, err := m.prompt.Select(m.listingTitle, options)
	if err != nil {
		return err
	}

	if i < len(items) {
		m.newState(detailsState)
		m.selected = items[i]
		return nil
	}

	switch options[i] {
	case loadMore:
		erase := m.progress("Loading more..")
		_, err := m.listing.FetchMore(m.ctx)
		erase()
		if err != nil {
			fail(m.out, err.Error())
		}
	case back:
		m.previousState()
	case quit:
		m.setState(quitState)
	}
	return nil
}

func (m *mini) handleDetailsState() error {
	kind, id := m.selected.Kind(), m.selected.ItemID()

	erase := m.progress("Loading details..")
	item, err := m.queries.Details(kind, id).Fetch(m.ctx)
	erase()
	if err != nil {
		fail(m.out, err.Error())
		return m.offerRetry()
	}

	m.printDetails(item)

	videos, err := m.queries.Videos(kind, id, false).Fetch(m.ctx)
	if err != nil {
		fail(m.out, "Could not load videos: "+err.Error())
	}
	trailer, hasTrailer := catalog.FindTrailer(videos).Get()

	var options []string
	if hasTrailer {
		options = append(options, playTrailer)
	}
	options = append(options, similar, back, quit)

	i, err := m.prompt.Select(item.DisplayTitle(), options)
	if err != nil {
		return err
	}

	switch options[i] {
	case playTrailer:
		if err := m.openURL(trailer.URL()); err != nil {
			fail(m.out, err.Error())
		}
	case similar:
		m.newState(listState)
		m.listingTitle = "More like " + item.DisplayTitle()
		m.listing = m.queries.Similar(kind, id)
	case back:
		m.previousState()
	case quit:
		m.setState(quitState)
	}
	return nil
}

// offerRetry lets the user retry a failed state.
func (m *mini) offerRetry() error {
	i, err := m.prompt.Select("Something went wrong", []string{retry, back, quit})
	if err != nil {
		return err
	}

	switch i {
	case 1:
		m.previousState()
	case 2:
		m.setState(quitState)
	}
	return nil
}

func (m *mini) printDetails(item catalog.MediaItem) {
	info := item.Info()

	title(m.out, item.DisplayTitle())
	fmt.Fprintf(m.out, "%s %.1f  %d%% Match  %s\n",
		icon.Get(icon.Star), info.VoteAverage, item.MatchPercent(), item.Year())

	if genres := info.GenreNames(); len(genres) > 0 {
		fmt.Fprintln(m.out, style.Faint(strings.Join(genres, ", ")))
	}
	if director := item.Director(); director != "" {
		fmt.Fprintln(m.out, style.Faint("By ")+director)
	}
	if info.Overview != "" {
		fmt.Fprintln(m.out, wrap.String(info.Overview, max(20, truncateAt)))
	}

	portraits, err := m.queries.Cast(item).Fetch(m.ctx)
	if err != nil || len(portraits) == 0 {
		return
	}

	names := lo.Map(portraits, func(p catalog.CastPortrait, _ int) string {
		if p.Character == "" {
			return p.Name
		}
		return p.Name + " (" + p.Character + ")"
	})
	fmt.Fprintln(m.out, style.Bold("Cast: ")+strings.Join(names, ", "))
}

func label(item catalog.MediaItem) string {
	s := item.DisplayTitle()
	if y := item.Year(); y != "" {
		s += " (" + y + ")"
	}
	s += fmt.Sprintf(" %s %.1f", icon.Get(icon.Star), item.Info().VoteAverage)
	return truncate.StringWithTail(s, uint(max(10, truncateAt-10)), "…")
}
