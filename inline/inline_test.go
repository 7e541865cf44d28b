package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	mu    sync.Mutex
	pages []int
}

func (f *fakeSource) FetchPage(_ context.Context, resource catalog.Resource, page int, _ catalog.Filters) (*catalog.Page[catalog.MediaItem], error) {
	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()

	var results []catalog.MediaItem
	for i := 1; i <= 2; i++ {
		id := page*10 + i
		results = append(results, &catalog.Movie{Common: catalog.Common{ID: id, VoteAverage: 7, PosterPath: "/p.jpg"}, Title: fmt.Sprintf("Movie %d", id)})
	}
	return &catalog.Page[catalog.MediaItem]{Page: page, Results: results, TotalPages: 3, TotalResults: 6}, nil
}

func (f *fakeSource) FetchDetails(_ context.Context, kind catalog.Kind, id int) (catalog.MediaItem, error) {
	if id != 550 {
		return nil, &catalog.NotFoundError{Kind: kind, ID: id}
	}
	return &catalog.Movie{
		Common: catalog.Common{
			ID:      550,
			Genres:  []catalog.Genre{{ID: 18, Name: "Drama"}},
			Credits: &catalog.Credits{Cast: []catalog.CastMember{{ID: 1, Name: "Edward Norton"}}},
		},
		Title: "Fight Club",
	}, nil
}

func (f *fakeSource) FetchVideos(_ context.Context, _ catalog.Kind, id int) ([]catalog.Video, error) {
	return []catalog.Video{{Key: fmt.Sprint("k", id), Type: "Trailer", Site: "YouTube"}}, nil
}

func (f *fakeSource) FetchGenres(context.Context, catalog.Kind) ([]catalog.Genre, error) {
	return nil, nil
}

func (f *fakeSource) FetchFeatured(context.Context, catalog.Kind) (catalog.MediaItem, error) {
	return nil, nil
}

func (f *fakeSource) JoinCastPortraits(_ context.Context, item catalog.MediaItem, _ int) []catalog.CastPortrait {
	return []catalog.CastPortrait{{ActorID: 1, Name: item.Info().Cast()[0].Name, ProfilePath: "/n.jpg"}}
}

func newOptions(src *fakeSource, out *bytes.Buffer) *Options {
	m := cache.New(cache.WithRetryPolicy(cache.RetryPolicy{Retries: 1, Delay: time.Millisecond}))
	return &Options{
		Out:          out,
		Queries:      cache.NewQueries(m, src),
		ImageBaseURL: "https://img.test",
	}
}

func TestRun(t *testing.T) {
	Convey("Given a listing with three pages", t, func() {
		src := &fakeSource{}
		var out bytes.Buffer
		options := newOptions(src, &out)
		options.Resource = mo.Some(catalog.PopularMovies)

		Convey("Two pages are loaded in order", func() {
			options.Pages = 2
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(out.Bytes(), &output), ShouldBeNil)
			So(output.Resource, ShouldEqual, "popular-movies")
			So(output.Pages, ShouldEqual, 2)
			So(output.TotalPages, ShouldEqual, 3)
			So(output.Results, ShouldHaveLength, 4)
			So(output.Results[0].ID, ShouldEqual, 11)
			So(output.Results[3].ID, ShouldEqual, 22)
			So(output.Results[0].PosterURL, ShouldEqual, "https://img.test/w500/p.jpg")
			So(output.Results[0].Trailer, ShouldBeEmpty)
			So(src.pages, ShouldResemble, []int{1, 2})
		})

		Convey("More pages than exist stop at the last one", func() {
			options.Pages = 10
			options.Videos = true
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(out.Bytes(), &output), ShouldBeNil)
			So(output.Pages, ShouldEqual, 3)
			So(output.Results[5].Trailer, ShouldEqual, "https://www.youtube.com/watch?v=k32")
		})
	})

	Convey("Given a search without a query", t, func() {
		src := &fakeSource{}
		var out bytes.Buffer
		options := newOptions(src, &out)
		options.Resource = mo.Some(catalog.SearchMovies)

		Convey("Nothing is requested", func() {
			So(Run(context.Background(), options), ShouldEqual, catalog.ErrEmptyQuery)
			So(src.pages, ShouldBeEmpty)
		})
	})

	Convey("Given details with cast", t, func() {
		src := &fakeSource{}
		var out bytes.Buffer
		options := newOptions(src, &out)
		options.Details = mo.Some(Target{Kind: catalog.Movies, ID: 550})
		options.Cast = true
		options.Videos = true

		So(Run(context.Background(), options), ShouldBeNil)

		var output Output
		So(json.Unmarshal(out.Bytes(), &output), ShouldBeNil)
		So(output.Details.Title, ShouldEqual, "Fight Club")
		So(output.Details.Genres, ShouldResemble, []string{"Drama"})
		So(output.Details.Cast[0].Name, ShouldEqual, "Edward Norton")
		So(output.Details.Trailer, ShouldEqual, "https://www.youtube.com/watch?v=k550")
		So(output.Results, ShouldBeEmpty)
	})

	Convey("Given a missing movie", t, func() {
		var out bytes.Buffer
		options := newOptions(&fakeSource{}, &out)
		options.Details = mo.Some(Target{Kind: catalog.Movies, ID: 1})

		err := Run(context.Background(), options)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "could not be found")
	})

	Convey("Nothing requested is an error", t, func() {
		var out bytes.Buffer
		So(Run(context.Background(), newOptions(&fakeSource{}, &out)), ShouldEqual, ErrNothingToDo)
	})
}

func TestParseTarget(t *testing.T) {
	Convey("Targets are kind:id", t, func() {
		target, err := ParseTarget("tv:1399")
		So(err, ShouldBeNil)
		So(target, ShouldResemble, Target{Kind: catalog.Series, ID: 1399})

		_, err = ParseTarget("movie")
		So(err, ShouldNotBeNil)

		_, err = ParseTarget("movie:-1")
		So(errors.Is(err, catalog.ErrInvalidID), ShouldBeTrue)
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes the output", t, func() {
		raw, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, "total_pages")
		So(string(raw), ShouldContainSubstring, "vote_average")
	})
}
