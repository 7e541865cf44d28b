package constant

// Metadata provider endpoints.
const (
	TMDBBaseURL      = "https://api.themoviedb.org/3"
	TMDBImageBaseURL = "https://image.tmdb.org/t/p"
	TMDBSiteURL      = "https://www.themoviedb.org"
	YouTubeWatchURL  = "https://www.youtube.com/watch?v="
)

// Image size tokens appended to the image base URL.
const (
	PosterSize   = "w500"
	BackdropSize = "w1920"
	ProfileSize  = "w185"
)

// Genre identifiers used by the fixed discover carousels.
const (
	GenreAction = 28
	GenreComedy = 35
)
