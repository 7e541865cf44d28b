package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/util"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case homeState, tvState:
		output = b.viewListing()
	case detailsState:
		output = b.viewDetails()
	case searchState:
		output = b.viewSearch()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return paddingStyle.Render(b.notifier.View(output))
}

func (b *statefulBubble) viewNav() string {
	tab := func(title string, active bool) string {
		if active {
			return style.Tag(color.White, style.AccentColor)(title)
		}
		return style.Faint(" " + title + " ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Bold(style.Fg(color.Marquee)(strings.ToUpper(constant.Marquee))),
		"  ",
		tab("Movies", b.state == homeState),
		tab("TV Shows", b.state == tvState),
		tab(icon.Get(icon.Search)+" Search", b.state == searchState),
	)
}

func (b *statefulBubble) viewListing() string {
	blocks := []string{b.viewNav(), ""}
	used := 2 + lipgloss.Height(b.viewHelp())

	if b.focus < 2 {
		hero := b.viewHero()
		blocks = append(blocks, hero, "")
		used += lipgloss.Height(hero) + 1
	}

	blocks = append(blocks, b.viewSections(max(0, b.focus-1), b.height-used)...)
	blocks = append(blocks, b.viewHelp())
	return strings.Join(blocks, "\n")
}

// viewSections renders sections from first on while they fit in height.
// The focused section is always rendered.
func (b *statefulBubble) viewSections(first, height int) []string {
	var blocks []string
	for i := first; i < len(b.sections); i++ {
		view := b.sections[i].carousel.View()
		h := lipgloss.Height(view) + 1
		if height < h && i > b.focus {
			break
		}
		height -= h
		blocks = append(blocks, view, "")
	}
	return blocks
}

func (b *statefulBubble) viewHero() string {
	h := b.hero
	st := h.featured.Snapshot()

	label := "Featured " + util.Capitalize(h.kind.Noun())
	item, ok := st.Data.Get()
	switch {
	case !ok && st.Err != nil:
		return style.ErrorTitle(label) + "\n" + style.Fg(style.ErrorColor)(st.Err.Error())
	case !ok:
		return style.Title(label) + "\n" + b.spinnerC.View() + fmt.Sprintf(" Loading featured %s...", h.kind.Noun())
	}

	trailer, hasTrailer := h.trailer().Get()
	lines := []string{
		style.Title(label) + " " + style.Bold(item.DisplayTitle()),
		metaLine(item),
		overview(item, b.width, 3),
		trailerLine(trailer, hasTrailer, viper.GetBool(key.TUIShowURLs)) + "   " + addedLine(b.added),
	}
	if st.Err != nil {
		lines = append(lines, style.Fg(style.WarningColor)("Could not refresh: "+st.Err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (b *statefulBubble) viewDetails() string {
	return strings.Join([]string{b.viewportC.View(), b.viewHelp()}, "\n")
}

func (b *statefulBubble) refreshViewport() {
	if b.details == nil {
		return
	}
	b.viewportC.SetContent(b.detailsContent())
}

func (b *statefulBubble) detailsContent() string {
	d := b.details
	st := d.details.Snapshot()
	noun := d.kind.Noun()

	item, ok := st.Data.Get()
	switch {
	case d.id <= 0:
		return viewFailure(fmt.Sprintf("The %s you are looking for could not be found.", noun))
	case !ok && st.Err != nil:
		return viewFailure(st.Err.Error())
	case !ok:
		return b.spinnerC.View() + fmt.Sprintf(" Loading %s details...", noun)
	}

	var lines []string
	lines = append(lines, style.Title(item.DisplayTitle()))
	if movie, isMovie := item.(*catalog.Movie); isMovie && movie.Tagline != "" {
		lines = append(lines, style.Italic(movie.Tagline))
	}
	lines = append(lines, "", metaLine(item))
	if tags := genreTags(item); tags != "" {
		lines = append(lines, tags)
	}
	if credit := creditLine(item); credit != "" {
		lines = append(lines, credit)
	}

	trailer, hasTrailer := d.trailer().Get()
	lines = append(lines,
		trailerLine(trailer, hasTrailer, viper.GetBool(key.TUIShowURLs))+"   "+addedLine(b.added),
		"",
		overview(item, b.width, 0),
		"",
		b.viewCast(),
	)

	if st.Err != nil {
		lines = append(lines, style.Fg(style.WarningColor)("Could not refresh: "+st.Err.Error()))
	}

	for _, s := range b.sections {
		lines = append(lines, "", s.carousel.View())
	}
	return strings.Join(lines, "\n")
}

func (b *statefulBubble) viewCast() string {
	d := b.details
	title := style.Title("Cast")
	if d.cast == nil {
		return title + "\n" + style.Faint("No cast information.")
	}

	st := d.cast.Snapshot()
	portraits, ok := st.Data.Get()
	switch {
	case !ok && st.Status == cache.Error:
		return title + "\n" + style.Fg(style.ErrorColor)(st.Err.Error())
	case !ok:
		return title + "\n" + b.spinnerC.View() + " Loading cast..."
	}

	showURLs := viper.GetBool(key.TUIShowURLs)
	base := viper.GetString(key.TMDBImageBaseURL)

	lines := []string{title}
	for _, p := range portraits {
		line := style.Bold(p.Name)
		if p.Character != "" {
			line += style.Faint(" as ") + p.Character
		}

		photo, has := catalog.ImageURL(base, catalog.ProfileSize, p.ProfilePath).Get()
		switch {
		case !has:
			line = style.Faint("◌ ") + line
		case showURLs:
			line = "● " + line + " " + style.Faint(photo)
		default:
			line = "● " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func viewFailure(message string) string {
	return strings.Join([]string{
		style.ErrorTitle("Oops! Something went wrong."),
		"",
		message,
		"",
		style.Faint("Press esc to go back"),
	}, "\n")
}

func (b *statefulBubble) viewSearch() string {
	s := b.search

	types := []struct {
		t     SearchType
		title string
	}{
		{SearchAll, "All"},
		{SearchMovies, "Movies"},
		{SearchTV, "TV Shows"},
	}

	var tabs []string
	for _, t := range types {
		if t.t == s.searchType {
			tabs = append(tabs, style.Tag(color.White, style.AccentColor)(t.title))
		} else {
			tabs = append(tabs, style.Faint(" "+t.title+" "))
		}
	}

	lines := []string{
		b.viewNav(),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Faint(fmt.Sprintf("Press %s to enter %q", b.keymap.acceptSearchSuggestion.Help().Key, suggestion)))
	}
	lines = append(lines, strings.Join(tabs, " "), "")

	switch {
	case s.query == "":
		lines = append(lines, style.Faint("Type a title and press enter."))
	case s.loading():
		lines = append(lines, b.spinnerC.View()+" Searching for results...")
	default:
		lines = append(lines, b.viewSections(0, b.height)...)

		if s.failed() {
			lines = append(lines,
				style.ErrorTitle("Failed to load search results."),
				style.Faint("Please check your internet connection or try again later."),
			)
		} else if s.empty() {
			lines = append(lines,
				style.Bold("No Results Found"),
				style.Faint(fmt.Sprintf("We couldn't find any movies or TV shows matching %q.", s.query)),
			)
		}
	}

	lines = append(lines, "", b.viewHelp())
	return strings.Join(lines, "\n")
}

func (b *statefulBubble) viewError() string {
	message := "unknown error"
	if b.lastError != nil {
		message = b.lastError.Error()
	}

	return strings.Join([]string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + message,
		"",
		b.viewHelp(),
	}, "\n")
}

func (b *statefulBubble) viewHelp() string {
	return b.helpC.View(b.keymap)
}
