package catalog

import (
	"strings"

	"github.com/marquee-cli/marquee/constant"
	"github.com/samber/mo"
)

// ImageSize is a TMDB image size token.
type ImageSize string

const (
	PosterSize   ImageSize = constant.PosterSize
	BackdropSize ImageSize = constant.BackdropSize
	ProfileSize  ImageSize = constant.ProfileSize
)

// ImageURL joins base, size and path. An empty path yields None.
func ImageURL(base string, size ImageSize, path string) mo.Option[string] {
	if path == "" {
		return mo.None[string]()
	}
	if base == "" {
		base = constant.TMDBImageBaseURL
	}
	return mo.Some(strings.TrimRight(base, "/") + "/" + string(size) + "/" + strings.TrimLeft(path, "/"))
}

type Profile struct {
	FilePath string `json:"file_path"`
}

// PersonImage is the result of a person image lookup.
type PersonImage struct {
	ID       int       `json:"id"`
	Profiles []Profile `json:"profiles"`
}

// ProfilePath is the first profile image path, or "".
func (p PersonImage) ProfilePath() string {
	if len(p.Profiles) == 0 {
		return ""
	}
	return p.Profiles[0].FilePath
}

// CastPortrait pairs a cast member with a profile image path ("" when unknown).
type CastPortrait struct {
	ActorID     int    `json:"actor_id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path"`
}
