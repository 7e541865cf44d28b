package catalog

import (
	"github.com/marquee-cli/marquee/constant"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type Video struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Site string `json:"site"`
	Name string `json:"name"`
}

// URL is the watch URL on YouTube, or "" for videos hosted elsewhere.
func (v Video) URL() string {
	if v.Key == "" || (v.Site != "" && v.Site != "YouTube") {
		return ""
	}
	return constant.YouTubeWatchURL + v.Key
}

// FindTrailer returns the first trailer that can be played, in provider order.
// Trailers without a key or hosted outside YouTube are skipped.
func FindTrailer(videos []Video) mo.Option[Video] {
	trailer, ok := lo.Find(videos, func(v Video) bool {
		return v.Type == "Trailer" && v.URL() != ""
	})
	if !ok {
		return mo.None[Video]()
	}
	return mo.Some(trailer)
}
