package cache

import (
	"context"
	"strconv"

	"github.com/marquee-cli/marquee/catalog"
)

// Source is the part of the catalog client the queries use.
type Source interface {
	FetchPage(ctx context.Context, resource catalog.Resource, page int, filters catalog.Filters) (*catalog.Page[catalog.MediaItem], error)
	FetchDetails(ctx context.Context, kind catalog.Kind, id int) (catalog.MediaItem, error)
	FetchVideos(ctx context.Context, kind catalog.Kind, id int) ([]catalog.Video, error)
	FetchGenres(ctx context.Context, kind catalog.Kind) ([]catalog.Genre, error)
	FetchFeatured(ctx context.Context, kind catalog.Kind) (catalog.MediaItem, error)
	JoinCastPortraits(ctx context.Context, item catalog.MediaItem, limit int) []catalog.CastPortrait
}

// Queries builds the cache queries every front end reads the catalog through.
type Queries struct {
	m   *Manager
	src Source
}

func NewQueries(m *Manager, src Source) *Queries {
	return &Queries{m: m, src: src}
}

func (q *Queries) Manager() *Manager {
	return q.m
}

// Listing is a paginated resource. It stays disabled until the filters
// satisfy the resource, so an empty search never reaches the network.
func (q *Queries) Listing(resource catalog.Resource, filters catalog.Filters) *Infinite[catalog.MediaItem] {
	return NewInfinite(q.m, InfiniteOptions[catalog.MediaItem]{
		Key:       NewKey(string(resource), filters.Params()...),
		StaleTime: StaleTime(string(resource)),
		Disabled:  !resource.Ready(filters),
		FetchPage: func(ctx context.Context, page int) (*catalog.Page[catalog.MediaItem], error) {
			return q.src.FetchPage(ctx, resource, page, filters)
		},
	})
}

// Featured is the hero item of the home (movies) or TV page.
func (q *Queries) Featured(kind catalog.Kind) *Query[catalog.MediaItem] {
	resource := FeaturedMovie
	if kind == catalog.Series {
		resource = FeaturedTV
	}

	return NewQuery(q.m, QueryOptions[catalog.MediaItem]{
		Key:       NewKey(resource),
		StaleTime: StaleTime(resource),
		Fetch: func(ctx context.Context) (catalog.MediaItem, error) {
			return q.src.FetchFeatured(ctx, kind)
		},
	})
}

// Details is a movie or series with credits. Ids below 1 disable it.
func (q *Queries) Details(kind catalog.Kind, id int) *Query[catalog.MediaItem] {
	resource := MovieDetails
	if kind == catalog.Series {
		resource = TVDetails
	}

	return NewQuery(q.m, QueryOptions[catalog.MediaItem]{
		Key:       NewKey(resource, strconv.Itoa(id)),
		StaleTime: StaleTime(resource),
		Disabled:  id <= 0,
		Fetch: func(ctx context.Context) (catalog.MediaItem, error) {
			return q.src.FetchDetails(ctx, kind, id)
		},
	})
}

// Videos lists the videos of an item. Featured heroes use their own
// freshness windows.
func (q *Queries) Videos(kind catalog.Kind, id int, featured bool) *Query[[]catalog.Video] {
	var resource string
	switch {
	case featured && kind == catalog.Series:
		resource = FeaturedTVVideos
	case featured:
		resource = FeaturedMovieVideos
	case kind == catalog.Series:
		resource = TVVideos
	default:
		resource = MovieVideos
	}

	return NewQuery(q.m, QueryOptions[[]catalog.Video]{
		Key:       NewKey(resource, strconv.Itoa(id)),
		StaleTime: StaleTime(resource),
		Disabled:  id <= 0,
		Fetch: func(ctx context.Context) ([]catalog.Video, error) {
			return q.src.FetchVideos(ctx, kind, id)
		},
	})
}

// Similar is the paginated list of items similar to id.
func (q *Queries) Similar(kind catalog.Kind, id int) *Infinite[catalog.MediaItem] {
	resource := catalog.SimilarMovies
	if kind == catalog.Series {
		resource = catalog.SimilarTV
	}
	return q.Listing(resource, catalog.Filters{ID: id})
}

// Cast joins portraits for the billed cast of a loaded item. It is disabled
// until the item is known and has cast.
func (q *Queries) Cast(item catalog.MediaItem) *Query[[]catalog.CastPortrait] {
	ready := item != nil && len(item.Info().Cast()) > 0

	var key Key
	if item != nil {
		key = NewKey(CastPortraits, string(item.Kind()), strconv.Itoa(item.ItemID()))
	}

	return NewQuery(q.m, QueryOptions[[]catalog.CastPortrait]{
		Key:       key,
		StaleTime: StaleTime(CastPortraits),
		Disabled:  !ready,
		Fetch: func(ctx context.Context) ([]catalog.CastPortrait, error) {
			return q.src.JoinCastPortraits(ctx, item, catalog.DefaultCastLimit), nil
		},
	})
}

func (q *Queries) Genres(kind catalog.Kind) *Query[[]catalog.Genre] {
	resource := MovieGenres
	if kind == catalog.Series {
		resource = TVGenres
	}

	return NewQuery(q.m, QueryOptions[[]catalog.Genre]{
		Key:       NewKey(resource),
		StaleTime: StaleTime(resource),
		Fetch: func(ctx context.Context) ([]catalog.Genre, error) {
			return q.src.FetchGenres(ctx, kind)
		},
	})
}
