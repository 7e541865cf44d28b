package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/query"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   map[string]int
	pages   map[catalog.Resource][]catalog.MediaItem
	details map[int]catalog.MediaItem
	videos  []catalog.Video
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:   make(map[string]int),
		pages:   make(map[catalog.Resource][]catalog.MediaItem),
		details: make(map[int]catalog.MediaItem),
	}
}

func (f *fakeSource) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeSource) callsTo(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) FetchPage(_ context.Context, resource catalog.Resource, page int, _ catalog.Filters) (*catalog.Page[catalog.MediaItem], error) {
	f.count(string(resource))
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.pages[resource]
	return &catalog.Page[catalog.MediaItem]{Page: page, Results: items, TotalPages: 1, TotalResults: len(items)}, nil
}

func (f *fakeSource) FetchDetails(_ context.Context, kind catalog.Kind, id int) (catalog.MediaItem, error) {
	f.count("details")
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.details[id]
	if !ok {
		return nil, &catalog.NotFoundError{Kind: kind, ID: id}
	}
	return item, nil
}

func (f *fakeSource) FetchVideos(context.Context, catalog.Kind, int) ([]catalog.Video, error) {
	f.count("videos")
	return f.videos, nil
}

func (f *fakeSource) FetchGenres(context.Context, catalog.Kind) ([]catalog.Genre, error) {
	return nil, nil
}

func (f *fakeSource) FetchFeatured(_ context.Context, kind catalog.Kind) (catalog.MediaItem, error) {
	f.count("featured")
	if kind == catalog.Series {
		return nil, &catalog.NotFoundError{Kind: kind}
	}
	return movie(27205, "Inception"), nil
}

func (f *fakeSource) JoinCastPortraits(_ context.Context, item catalog.MediaItem, limit int) []catalog.CastPortrait {
	f.count("cast")
	var portraits []catalog.CastPortrait
	for i, member := range item.Info().Cast() {
		if i == limit {
			break
		}
		portraits = append(portraits, catalog.CastPortrait{ActorID: member.ID, Name: member.Name, Character: member.Character})
	}
	return portraits
}

func movie(id int, title string) *catalog.Movie {
	return &catalog.Movie{
		Common:      catalog.Common{ID: id, Overview: "A story about " + title + ".", VoteAverage: 8.1},
		Title:       title,
		ReleaseDate: "2010-07-16",
	}
}

func newTestBubble(src *fakeSource, opened *[]string) *statefulBubble {
	m := cache.New(cache.WithRetryPolicy(cache.RetryPolicy{Retries: 1, Delay: time.Millisecond}))
	return newBubble(&Options{
		Queries: cache.NewQueries(m, src),
		OpenURL: func(url string) error {
			*opened = append(*opened, url)
			return nil
		},
	})
}

// settle feeds cache notifications to the bubble until cond holds.
func settle(b *statefulBubble, cond func() bool) bool {
	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case msg := <-b.updates:
			b.Update(msg)
		case <-deadline:
			return false
		}
	}
	return true
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSearch(t *testing.T) {
	Convey("Given a search for matrix limited to movies with no results", t, func() {
		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)

		b.newState(Search("  matrix ", SearchMovies))

		So(settle(b, func() bool { return strings.Contains(b.View(), "No movies found") }), ShouldBeTrue)

		Convey("The movie section shows its empty state", func() {
			So(b.View(), ShouldContainSubstring, `No movies found for "matrix".`)
			So(src.callsTo(string(catalog.SearchMovies)), ShouldEqual, 1)
		})

		Convey("No TV request is issued", func() {
			So(src.callsTo(string(catalog.SearchTV)), ShouldEqual, 0)
			So(b.search.tv, ShouldBeNil)
		})

		Convey("Cycling the type to tv searches series only", func() {
			b.Update(keyPress("shift+tab"))
			So(b.route.searchType, ShouldEqual, SearchTV)
			So(settle(b, func() bool { return strings.Contains(b.View(), "No TV shows found") }), ShouldBeTrue)
			So(src.callsTo(string(catalog.SearchTV)), ShouldEqual, 1)
		})
	})

	Convey("Given an empty search under all", t, func() {
		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)

		b.newState(Search("", SearchAll))

		Convey("Nothing is requested and the input takes focus", func() {
			So(b.keymap.inputFocused, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "Type a title and press enter.")
			So(src.callsTo(string(catalog.SearchMovies)), ShouldEqual, 0)
			So(src.callsTo(string(catalog.SearchTV)), ShouldEqual, 0)
		})

		Convey("Submitting a query searches both kinds", func() {
			src.pages[catalog.SearchMovies] = []catalog.MediaItem{movie(603, "The Matrix")}
			b.inputC.SetValue("matrix")
			b.Update(keyPress("enter"))

			So(settle(b, func() bool { return strings.Contains(b.View(), "The Matrix") }), ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, `No TV shows found for "matrix".`)
			So(b.View(), ShouldNotContainSubstring, "No Results Found")
			So(src.callsTo(string(catalog.SearchTV)), ShouldEqual, 1)
		})

		Convey("Both kinds empty shows the combined message", func() {
			b.inputC.SetValue("zzzz")
			b.Update(keyPress("enter"))

			So(settle(b, func() bool { return strings.Contains(b.View(), "No Results Found") }), ShouldBeTrue)
		})
	})

	Convey("Given an earlier search", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		query.Forget()
		query.Remember("the matrix", 1)

		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Search("", SearchAll))

		Convey("Typing suggests it and tab accepts it", func() {
			b.Update(keyPress("m"))
			So(b.searchSuggestion.MustGet(), ShouldEqual, "the matrix")

			b.Update(keyPress("tab"))
			So(b.inputC.Value(), ShouldEqual, "the matrix")
		})
	})
}

func TestHome(t *testing.T) {
	Convey("Given the home page", t, func() {
		src := newFakeSource()
		src.pages[catalog.TrendingMovies] = []catalog.MediaItem{movie(1, "Dune"), movie(2, "Arrival")}
		src.videos = []catalog.Video{{Key: "teaser", Type: "Teaser"}, {Key: "abc", Type: "Trailer", Site: "YouTube"}}

		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Home())

		So(settle(b, func() bool {
			_, ok := b.currentTrailer()
			return ok && len(b.sections[0].carousel.Items()) == 2
		}), ShouldBeTrue)

		Convey("It renders the hero and every section", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "Inception")
			So(view, ShouldContainSubstring, "Trending Now")
			So(len(b.sections), ShouldEqual, 5)
			So(b.sections[1].carousel.View(), ShouldContainSubstring, "No popular movies found.")
			So(src.callsTo(string(catalog.DiscoverMovies)), ShouldEqual, 1)
		})

		Convey("The trailer opens the YouTube URL", func() {
			b.Update(keyPress("o"))
			So(opened, ShouldResemble, []string{"https://www.youtube.com/watch?v=abc"})
		})

		Convey("Add to list switches itself off", func() {
			b.Update(keyPress("+"))
			So(b.added, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "Added to My List")

			b.Update(addedResetMsg{gen: b.addedGen})
			So(b.added, ShouldBeFalse)
		})

		Convey("A stale reset does not switch a newer toggle off", func() {
			b.Update(keyPress("+"))
			old := b.addedGen
			b.Update(keyPress("+"))
			b.Update(keyPress("+"))
			b.Update(addedResetMsg{gen: old})
			So(b.added, ShouldBeTrue)
		})

		Convey("Remounting reads the cache instead of the network", func() {
			b.Update(keyPress("t"))
			So(b.state, ShouldEqual, tvState)
			b.Update(keyPress("esc"))
			So(b.state, ShouldEqual, homeState)
			So(src.callsTo(string(catalog.TrendingMovies)), ShouldEqual, 1)
			So(src.callsTo("featured"), ShouldBeGreaterThanOrEqualTo, 1)
		})

		Convey("Refresh fetches again", func() {
			b.Update(keyPress("r"))
			So(settle(b, func() bool { return src.callsTo(string(catalog.TrendingMovies)) == 2 }), ShouldBeTrue)
		})

		Convey("Enter opens the selected item", func() {
			src.details[1] = movie(1, "Dune")
			b.Update(keyPress("enter"))
			So(b.state, ShouldEqual, detailsState)
			So(b.route, ShouldResemble, Details(catalog.Movies, 1))
		})
	})

	Convey("Given the TV page without a featured series", t, func() {
		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(TV())

		Convey("The hero shows the error in its place", func() {
			So(settle(b, func() bool { return strings.Contains(b.View(), "No featured TV show found.") }), ShouldBeTrue)
			So(len(b.sections), ShouldEqual, 4)
			So(src.callsTo(string(catalog.DiscoverTV)), ShouldEqual, 1)
		})
	})
}

func TestDetails(t *testing.T) {
	Convey("Given a movie that does not exist", t, func() {
		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Home())
		b.newState(Details(catalog.Movies, 550))

		So(settle(b, func() bool { return strings.Contains(b.detailsContent(), "Oops!") }), ShouldBeTrue)

		Convey("The page fails after one retry", func() {
			So(b.detailsContent(), ShouldContainSubstring, "The movie you are looking for could not be found.")
			So(src.callsTo("details"), ShouldEqual, 2)
		})

		Convey("Going back returns to the previous page", func() {
			b.Update(keyPress("esc"))
			So(b.state, ShouldEqual, homeState)
			So(b.details, ShouldBeNil)
		})
	})

	Convey("Given a movie with cast", t, func() {
		src := newFakeSource()
		fight := movie(550, "Fight Club")
		fight.Tagline = "Mischief. Mayhem. Soap."
		fight.Runtime = 139
		fight.Credits = &catalog.Credits{
			Cast: []catalog.CastMember{{ID: 1, Name: "Edward Norton", Character: "Narrator"}},
			Crew: []catalog.CrewMember{{ID: 9, Name: "David Fincher", Job: "Director"}},
		}
		src.details[550] = fight

		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Details(catalog.Movies, 550))

		So(settle(b, func() bool {
			content := b.detailsContent()
			return strings.Contains(content, "Edward Norton") && strings.Contains(content, "No similar movies found.")
		}), ShouldBeTrue)

		Convey("It renders the details and the joined cast", func() {
			content := b.detailsContent()
			So(content, ShouldContainSubstring, "Mischief. Mayhem. Soap.")
			So(content, ShouldContainSubstring, "2h 19m")
			So(content, ShouldContainSubstring, "David Fincher")
			So(content, ShouldContainSubstring, "No trailer available")
			So(content, ShouldContainSubstring, "No similar movies found.")
			So(src.callsTo("cast"), ShouldEqual, 1)
		})

		Convey("Without a trailer nothing is opened", func() {
			b.Update(keyPress("o"))
			So(opened, ShouldBeEmpty)
		})

		Convey("Notifications of an unmounted page are ignored", func() {
			old := b.gen
			b.newState(Home())
			So(func() { b.Update(updateMsg{gen: old}) }, ShouldNotPanic)
			So(b.details, ShouldBeNil)
		})
	})

	Convey("Given a movie whose only trailer is on Vimeo", t, func() {
		src := newFakeSource()
		src.details[550] = movie(550, "Fight Club")
		src.videos = []catalog.Video{{Key: "v1", Type: "Trailer", Site: "Vimeo"}}

		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Details(catalog.Movies, 550))

		So(settle(b, func() bool {
			return b.details.videos.Snapshot().Data.IsPresent() && strings.Contains(b.detailsContent(), "No similar movies found.")
		}), ShouldBeTrue)

		Convey("No trailer is offered and nothing is opened", func() {
			So(b.detailsContent(), ShouldContainSubstring, "No trailer available")
			b.Update(keyPress("o"))
			So(opened, ShouldBeEmpty)
		})
	})

	Convey("Given an invalid id", t, func() {
		src := newFakeSource()
		var opened []string
		b := newTestBubble(src, &opened)
		b.newState(Details(catalog.Series, 0))

		Convey("Nothing is requested", func() {
			So(b.detailsContent(), ShouldContainSubstring, "The TV show you are looking for could not be found.")
			So(src.callsTo("details"), ShouldEqual, 0)
			So(src.callsTo("videos"), ShouldEqual, 0)
		})
	})
}

func TestRoutes(t *testing.T) {
	Convey("Search types parse and cycle", t, func() {
		for in, want := range map[string]SearchType{"": SearchAll, "movies": SearchMovies, "TV": SearchTV, "all": SearchAll} {
			got, err := ParseSearchType(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := ParseSearchType("people")
		So(err, ShouldNotBeNil)

		So(SearchAll.next().next().next(), ShouldEqual, SearchAll)
	})

	Convey("Routes print like paths", t, func() {
		So(Home().String(), ShouldEqual, "home")
		So(Details(catalog.Series, 1399).String(), ShouldEqual, "tv/1399")
		So(Search(" matrix ", SearchMovies).String(), ShouldEqual, fmt.Sprintf("search?query=%s&type=%s", "matrix", "movies"))
	})
}
