package inline

import (
	"encoding/json"
	"io"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/samber/lo"
)

type Item struct {
	Kind        catalog.Kind           `json:"kind" jsonschema:"enum=movie,enum=tv,description=Kind of the item."`
	ID          int                    `json:"id" jsonschema:"description=TMDB id of the item."`
	Title       string                 `json:"title" jsonschema:"description=Title of the movie or name of the series."`
	Date        string                 `json:"date,omitempty" jsonschema:"description=Release date or first air date (YYYY-MM-DD)."`
	Overview    string                 `json:"overview"`
	VoteAverage float64                `json:"vote_average" jsonschema:"minimum=0,maximum=10"`
	Match       int                    `json:"match" jsonschema:"minimum=0,maximum=100,description=Vote average as a percentage."`
	PosterURL   string                 `json:"poster_url,omitempty"`
	Genres      []string               `json:"genres,omitempty" jsonschema:"description=Genre names. Only present on details."`
	Director    string                 `json:"director,omitempty" jsonschema:"description=Director of a movie or first creator of a series."`
	Trailer     string                 `json:"trailer,omitempty" jsonschema:"description=YouTube URL of the first trailer."`
	Cast        []catalog.CastPortrait `json:"cast,omitempty" jsonschema:"description=Billed cast with profile images."`
}

type Output struct {
	Resource     string   `json:"resource,omitempty" jsonschema:"description=Listing the results come from."`
	Params       []string `json:"params,omitempty"`
	Pages        int      `json:"pages" jsonschema:"description=Number of pages loaded."`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Results      []*Item  `json:"results"`
	Details      *Item    `json:"details,omitempty"`
}

func newItem(item catalog.MediaItem, imageBase string) *Item {
	info := item.Info()
	return &Item{
		Kind:        item.Kind(),
		ID:          item.ItemID(),
		Title:       item.DisplayTitle(),
		Date:        item.Date(),
		Overview:    info.Overview,
		VoteAverage: info.VoteAverage,
		Match:       item.MatchPercent(),
		PosterURL:   catalog.ImageURL(imageBase, catalog.PosterSize, info.PosterPath).OrEmpty(),
		Genres:      lo.Ternary(len(info.Genres) > 0, info.GenreNames(), nil),
		Director:    item.Director(),
	}
}

func writeJson(w io.Writer, output *Output) error {
	if output.Results == nil {
		output.Results = []*Item{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
