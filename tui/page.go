package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/internal/ui"
	"github.com/marquee-cli/marquee/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// section binds a carousel to a paginated listing.
type section struct {
	carousel *ui.Carousel
	listing  *cache.Infinite[catalog.MediaItem]

	// errLabel prefixes the error shown in place of the cards.
	errLabel string
}

func (b *statefulBubble) newSection(title, empty string, listing *cache.Infinite[catalog.MediaItem]) *section {
	s := &section{listing: listing}
	s.carousel = ui.NewCarousel(title, ui.CarouselOptions{
		ScrollStep:   viper.GetInt(key.TUIScrollStep),
		Placeholders: viper.GetInt(key.TUIPlaceholderSlots),
		EmptyText:    empty,
		LoadMore: func() tea.Cmd {
			listing.LoadMore(b.ctx)
			return nil
		},
	})
	s.carousel.SetWidth(b.width)
	return s
}

func (s *section) state() cache.InfiniteState[catalog.MediaItem] {
	return s.listing.Snapshot()
}

func (s *section) sync() {
	st := s.state()

	err := st.Err
	if err != nil && s.errLabel != "" {
		err = fmt.Errorf("%s: %w", s.errLabel, err)
	}
	s.carousel.SetData(st.Items(), st.Loading() || st.FetchingMore, st.HasNextPage, err)
}

// hero is the featured item of a listing page with its trailer.
type hero struct {
	kind     catalog.Kind
	featured *cache.Query[catalog.MediaItem]

	// videos exists once the featured item is known.
	videos *cache.Query[[]catalog.Video]
}

func (h *hero) item() mo.Option[catalog.MediaItem] {
	return h.featured.Snapshot().Data
}

func (h *hero) trailer() mo.Option[catalog.Video] {
	if h.videos == nil {
		return mo.None[catalog.Video]()
	}
	videos, ok := h.videos.Snapshot().Data.Get()
	if !ok {
		return mo.None[catalog.Video]()
	}
	return catalog.FindTrailer(videos)
}

// detailsPage holds the queries of a movie or series page. Dependent
// queries are created once what they need is known.
type detailsPage struct {
	kind    catalog.Kind
	id      int
	details *cache.Query[catalog.MediaItem]
	videos  *cache.Query[[]catalog.Video]
	cast    *cache.Query[[]catalog.CastPortrait]
}

func (d *detailsPage) item() mo.Option[catalog.MediaItem] {
	return d.details.Snapshot().Data
}

func (d *detailsPage) trailer() mo.Option[catalog.Video] {
	videos, ok := d.videos.Snapshot().Data.Get()
	if !ok {
		return mo.None[catalog.Video]()
	}
	return catalog.FindTrailer(videos)
}

// searchPage holds one result section per included kind.
type searchPage struct {
	query      string
	searchType SearchType
	movies     *section
	tv         *section
}

func (s *searchPage) sections() []*section {
	var sections []*section
	if s.movies != nil {
		sections = append(sections, s.movies)
	}
	if s.tv != nil {
		sections = append(sections, s.tv)
	}
	return sections
}

func (s *searchPage) loading() bool {
	for _, sec := range s.sections() {
		if sec.state().Loading() {
			return true
		}
	}
	return false
}

// failed reports a failure of both kinds under the all filter.
func (s *searchPage) failed() bool {
	if s.searchType != SearchAll || s.movies == nil || s.tv == nil {
		return false
	}
	return s.movies.state().Err != nil && s.tv.state().Err != nil
}

// empty reports that both kinds came back without results under the all filter.
func (s *searchPage) empty() bool {
	if s.searchType != SearchAll || s.movies == nil || s.tv == nil {
		return false
	}
	for _, sec := range s.sections() {
		st := sec.state()
		if st.Status != cache.Success || len(st.Items()) != 0 {
			return false
		}
	}
	return true
}
