package tui

import (
	"fmt"
	"strings"

	"github.com/marquee-cli/marquee/catalog"
)

type state int

const (
	homeState state = iota
	tvState
	detailsState
	searchState
	errorState
)

// SearchType filters search results.
type SearchType string

const (
	SearchAll    SearchType = "all"
	SearchMovies SearchType = "movies"
	SearchTV     SearchType = "tv"
)

// ParseSearchType accepts "all", "movies" and "tv". Empty input means all.
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchAll:
		return SearchAll, nil
	case SearchMovies, "movie":
		return SearchMovies, nil
	case SearchTV, "series":
		return SearchTV, nil
	default:
		return "", fmt.Errorf("unknown search type %q, expected one of movies, tv, all", s)
	}
}

func (t SearchType) next() SearchType {
	switch t {
	case SearchAll:
		return SearchMovies
	case SearchMovies:
		return SearchTV
	default:
		return SearchAll
	}
}

func (t SearchType) includes(kind catalog.Kind) bool {
	switch t {
	case SearchMovies:
		return kind == catalog.Movies
	case SearchTV:
		return kind == catalog.Series
	default:
		return true
	}
}

// Route is a page and its parameters.
type Route struct {
	state      state
	kind       catalog.Kind
	id         int
	query      string
	searchType SearchType
}

func Home() Route { return Route{state: homeState} }

func TV() Route { return Route{state: tvState} }

// Details is the page of a movie or series.
func Details(kind catalog.Kind, id int) Route {
	return Route{state: detailsState, kind: kind, id: id}
}

// Search opens the search page, running q right away when it is not blank.
func Search(q string, t SearchType) Route {
	return Route{state: searchState, query: strings.TrimSpace(q), searchType: t}
}

func (r Route) String() string {
	switch r.state {
	case tvState:
		return "tv"
	case detailsState:
		return fmt.Sprintf("%s/%d", r.kind, r.id)
	case searchState:
		return fmt.Sprintf("search?query=%s&type=%s", r.query, r.searchType)
	case errorState:
		return "error"
	default:
		return "home"
	}
}
