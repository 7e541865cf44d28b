package cache

import (
	"time"

	"github.com/marquee-cli/marquee/catalog"
)

// Resource names of the non-listing entries.
const (
	FeaturedMovie       = "featured-movie"
	FeaturedTV          = "featured-tv"
	MovieDetails        = "movie-details"
	TVDetails           = "tv-details"
	MovieVideos         = "movie-videos"
	TVVideos            = "tv-videos"
	FeaturedMovieVideos = "featured-movie-videos"
	FeaturedTVVideos    = "featured-tv-videos"
	MovieGenres         = "movie-genres"
	TVGenres            = "tv-genres"
	CastPortraits       = "cast-portraits"
)

// Freshness is how long each resource is served without refetching.
var Freshness = map[string]time.Duration{
	FeaturedMovie:       60 * time.Minute,
	FeaturedTV:          5 * time.Minute,
	MovieDetails:        15 * time.Minute,
	TVDetails:           15 * time.Minute,
	MovieVideos:         30 * time.Minute,
	TVVideos:            30 * time.Minute,
	FeaturedMovieVideos: 30 * time.Minute,
	FeaturedTVVideos:    10 * time.Minute,
	MovieGenres:         60 * time.Minute,
	TVGenres:            60 * time.Minute,
	CastPortraits:       Forever,

	string(catalog.TrendingMovies): 5 * time.Minute,
	string(catalog.PopularMovies):  10 * time.Minute,
	string(catalog.TopRatedMovies): 10 * time.Minute,
	string(catalog.NowPlaying):     10 * time.Minute,
	string(catalog.DiscoverMovies): 10 * time.Minute,
	string(catalog.TrendingTV):     5 * time.Minute,
	string(catalog.PopularTV):      5 * time.Minute,
	string(catalog.TopRatedTV):     5 * time.Minute,
	string(catalog.DiscoverTV):     5 * time.Minute,
	string(catalog.SimilarMovies):  10 * time.Minute,
	string(catalog.SimilarTV):      10 * time.Minute,
	string(catalog.SearchMovies):   5 * time.Minute,
	string(catalog.SearchTV):       5 * time.Minute,
}

// DefaultStaleTime applies to resources missing from Freshness.
const DefaultStaleTime = 5 * time.Minute

// StaleTime looks up the freshness window of a resource.
func StaleTime(resource string) time.Duration {
	if d, ok := Freshness[resource]; ok {
		return d
	}
	return DefaultStaleTime
}
