package tui

import (
	"fmt"
	"strings"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

// metaLine is the rating, match, year and length of an item.
func metaLine(item catalog.MediaItem) string {
	parts := []string{
		style.Rating(fmt.Sprintf("%s %.1f", icon.Get(icon.Star), item.Info().VoteAverage)),
		style.Match(fmt.Sprintf("%d%% Match", item.MatchPercent())),
	}

	if y := item.Year(); y != "" {
		parts = append(parts, icon.Get(icon.Calendar)+" "+y)
	}

	switch item := item.(type) {
	case *catalog.Movie:
		if item.Runtime > 0 {
			parts = append(parts, icon.Get(icon.Clock)+" "+duration(item.Runtime))
		}
	case *catalog.TVShow:
		if item.NumberOfSeasons > 0 {
			parts = append(parts, icon.Get(icon.TV)+" "+seasons(item.NumberOfSeasons))
		}
	}

	return strings.Join(parts, style.Faint(" · "))
}

func duration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func seasons(n int) string {
	if n == 1 {
		return "1 season"
	}
	return fmt.Sprintf("%d seasons", n)
}

func genreTags(item catalog.MediaItem) string {
	names := item.Info().GenreNames()
	if len(names) == 0 {
		return ""
	}
	return strings.Join(lo.Map(names, func(name string, _ int) string {
		return style.Tag(color.White, style.Surface)(name)
	}), " ")
}

// creditLine names the director of a movie or the creator of a series.
func creditLine(item catalog.MediaItem) string {
	name := item.Director()
	if name == "" {
		return ""
	}

	label := "Director"
	if item.Kind() == catalog.Series {
		label = "Created by"
	}
	return style.Faint(label+": ") + name
}

// overview wraps the synopsis to width, keeping at most lines lines (0 keeps all).
func overview(item catalog.MediaItem, width, lines int) string {
	text := strings.TrimSpace(item.Info().Overview)
	if text == "" {
		return style.Faint("No overview available.")
	}

	wrapped := strings.Split(wrap.String(text, max(20, width)), "\n")
	if lines > 0 && len(wrapped) > lines {
		wrapped = wrapped[:lines]
		wrapped[lines-1] = strings.TrimRight(wrapped[lines-1], " ") + "…"
	}
	return strings.Join(wrapped, "\n")
}

func trailerLine(trailer catalog.Video, ok bool, showURL bool) string {
	if !ok {
		return style.Faint("No trailer available")
	}

	line := style.Fg(color.Marquee)(icon.Get(icon.Play) + " Trailer available")
	if showURL {
		line += " " + style.Faint(trailer.URL())
	}
	return line
}

func addedLine(added bool) string {
	if added {
		return style.Fg(style.SuccessColor)(icon.Get(icon.Check) + " Added to My List")
	}
	return style.Faint(icon.Get(icon.Plus) + " My List")
}
