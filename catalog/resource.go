package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Resource names a paginated listing endpoint.
type Resource string

const (
	PopularMovies  Resource = "popular-movies"
	TopRatedMovies Resource = "top-rated-movies"
	TrendingMovies Resource = "trending-movies"
	NowPlaying     Resource = "now-playing"
	DiscoverMovies Resource = "discover-movies"
	PopularTV      Resource = "popular-tv"
	TrendingTV     Resource = "trending-tv"
	TopRatedTV     Resource = "top-rated-tv"
	DiscoverTV     Resource = "discover-tv"
	SimilarMovies  Resource = "similar-movies"
	SimilarTV      Resource = "similar-tv"
	SearchMovies   Resource = "search-movies"
	SearchTV       Resource = "search-tv"
)

type requirement int

const (
	needsNothing requirement = iota
	needsID
	needsQuery
	needsGenre
)

type resourceSpec struct {
	path  string
	kind  Kind
	needs requirement
	genre bool
}

var resources = map[Resource]resourceSpec{
	PopularMovies:  {path: "/movie/popular", kind: Movies, genre: true},
	TopRatedMovies: {path: "/movie/top_rated", kind: Movies, genre: true},
	TrendingMovies: {path: "/trending/movie/day", kind: Movies},
	NowPlaying:     {path: "/movie/now_playing", kind: Movies},
	DiscoverMovies: {path: "/discover/movie", kind: Movies, needs: needsGenre, genre: true},
	PopularTV:      {path: "/tv/popular", kind: Series, genre: true},
	TrendingTV:     {path: "/trending/tv/day", kind: Series},
	TopRatedTV:     {path: "/tv/top_rated", kind: Series},
	DiscoverTV:     {path: "/discover/tv", kind: Series, needs: needsGenre, genre: true},
	SimilarMovies:  {path: "/movie/%d/similar", kind: Movies, needs: needsID},
	SimilarTV:      {path: "/tv/%d/similar", kind: Series, needs: needsID},
	SearchMovies:   {path: "/search/movie", kind: Movies, needs: needsQuery},
	SearchTV:       {path: "/search/tv", kind: Series, needs: needsQuery},
}

// Resources lists every known resource name, sorted.
func Resources() []Resource {
	names := make([]Resource, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseResource validates a resource name.
func ParseResource(name string) (Resource, error) {
	r := Resource(strings.TrimSpace(name))
	if _, ok := resources[r]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownResource, name)
	}
	return r, nil
}

// Kind is the media kind the resource lists.
func (r Resource) Kind() Kind {
	return resources[r].kind
}

// Filters narrows a listing. Which fields are required depends on the resource.
type Filters struct {
	ID    int
	Query string
	Genre int
}

// Params renders the filters as cache key parameters.
func (f Filters) Params() []string {
	var params []string
	if f.ID > 0 {
		params = append(params, "id="+strconv.Itoa(f.ID))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		params = append(params, "query="+q)
	}
	if f.Genre > 0 {
		params = append(params, "genre="+strconv.Itoa(f.Genre))
	}
	return params
}

// request validates the arguments and returns the path and query to send.
func (r Resource) request(page int, filters Filters) (string, url.Values, error) {
	spec, ok := resources[r]
	if !ok {
		return "", nil, fmt.Errorf("%w %q", ErrUnknownResource, string(r))
	}

	if page < 1 {
		return "", nil, ErrInvalidPage
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	path := spec.path

	switch spec.needs {
	case needsID:
		if filters.ID <= 0 {
			return "", nil, ErrInvalidID
		}
		path = fmt.Sprintf(spec.path, filters.ID)
	case needsQuery:
		query := strings.TrimSpace(filters.Query)
		if query == "" {
			return "", nil, ErrEmptyQuery
		}
		values.Set("query", query)
	case needsGenre:
		if filters.Genre <= 0 {
			return "", nil, fmt.Errorf("%s needs a genre: %w", r, ErrInvalidID)
		}
	}

	if spec.genre && filters.Genre > 0 {
		values.Set("with_genres", strconv.Itoa(filters.Genre))
	}

	return path, values, nil
}

// Validate reports why filters do not satisfy the resource, if they don't.
func (r Resource) Validate(filters Filters) error {
	_, _, err := r.request(1, filters)
	return err
}

// Ready reports whether a fetch would be issued at all.
func (r Resource) Ready(filters Filters) bool {
	return r.Validate(filters) == nil
}
