// Package catalog is the TMDB client and the records it returns.
package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Kind discriminates movies from series.
type Kind string

const (
	Movies Kind = "movie"
	Series Kind = "tv"
)

// ParseKind accepts "movie", "movies", "tv", "series" and "show".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return Movies, nil
	case "tv", "series", "show":
		return Series, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// Noun is the human name of the kind, e.g. "movie" or "TV show".
func (k Kind) Noun() string {
	if k == Series {
		return "TV show"
	}
	return "movie"
}

// MediaItem is either a *Movie or a *TVShow.
type MediaItem interface {
	Kind() Kind
	ItemID() int
	DisplayTitle() string
	// Date is the release date for movies and the first air date for series.
	Date() string
	Year() string
	MatchPercent() int
	Director() string
	Info() *Common

	sealed()
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Common holds the fields shared by movies and series.
// Null image paths decode to empty strings.
type Common struct {
	ID           int      `json:"id"`
	Overview     string   `json:"overview"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	VoteAverage  float64  `json:"vote_average"`
	GenreIDs     []int    `json:"genre_ids,omitempty"`
	Genres       []Genre  `json:"genres,omitempty"`
	Credits      *Credits `json:"credits,omitempty"`
}

func (c *Common) ItemID() int   { return c.ID }
func (c *Common) Info() *Common { return c }

// MatchPercent is the vote average on a 0-100 scale.
func (c *Common) MatchPercent() int {
	return int(math.Round(c.VoteAverage * 10))
}

// Cast returns the billed cast, or nil when credits were not requested.
func (c *Common) Cast() []CastMember {
	if c.Credits == nil {
		return nil
	}
	return c.Credits.Cast
}

// GenreNames lists the detailed genres, present only on detail lookups.
func (c *Common) GenreNames() []string {
	names := make([]string, 0, len(c.Genres))
	for _, g := range c.Genres {
		names = append(names, g.Name)
	}
	return names
}

func year(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

type Movie struct {
	Common
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Runtime     int    `json:"runtime,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
}

func (m *Movie) Kind() Kind           { return Movies }
func (m *Movie) DisplayTitle() string { return m.Title }
func (m *Movie) Date() string         { return m.ReleaseDate }
func (m *Movie) Year() string         { return year(m.ReleaseDate) }
func (m *Movie) sealed()              {}

// Director is the first crew member credited as Director.
func (m *Movie) Director() string {
	if m.Credits == nil {
		return ""
	}
	for _, member := range m.Credits.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return ""
}

type Creator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type TVShow struct {
	Common
	Name             string    `json:"name"`
	FirstAirDate     string    `json:"first_air_date"`
	NumberOfSeasons  int       `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int       `json:"number_of_episodes,omitempty"`
	CreatedBy        []Creator `json:"created_by,omitempty"`
}

func (s *TVShow) Kind() Kind           { return Series }
func (s *TVShow) DisplayTitle() string { return s.Name }
func (s *TVShow) Date() string         { return s.FirstAirDate }
func (s *TVShow) Year() string         { return year(s.FirstAirDate) }
func (s *TVShow) sealed()              {}

// Director is the first listed creator.
func (s *TVShow) Director() string {
	if len(s.CreatedBy) == 0 {
		return ""
	}
	return s.CreatedBy[0].Name
}
