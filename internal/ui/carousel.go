package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/mo"
)

// Carousel option defaults.
const (
	DefaultCardWidth    = 24
	DefaultScrollStep   = 3
	DefaultPlaceholders = 6
)

type CarouselOptions struct {
	// CardWidth is the number of columns one card takes, gap included.
	CardWidth    int
	ScrollStep   int
	Placeholders int
	EmptyText    string
	// LoadMore asks for the next page. It is called on an explicit request
	// and when scrolling right comes close to the end of the strip.
	LoadMore func() tea.Cmd
}

// Carousel is a horizontally scrolling strip of media cards.
//
// Geometry follows a scroll container measured in columns: the strip is
// scrollWidth wide, scrolled scrollLeft from the start, and clientWidth of it
// is visible. Scrolling moves by ScrollStep cards.
type Carousel struct {
	Title string

	opts CarouselOptions

	items   []catalog.MediaItem
	loading bool
	hasNext bool
	err     error

	cursor int
	offset int
	width  int

	focused   bool
	armed     bool
	lastCount int
}

func NewCarousel(title string, opts CarouselOptions) *Carousel {
	if opts.CardWidth <= 0 {
		opts.CardWidth = DefaultCardWidth
	}
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultScrollStep
	}
	if opts.Placeholders <= 0 {
		opts.Placeholders = DefaultPlaceholders
	}
	return &Carousel{Title: title, opts: opts, armed: true, width: opts.CardWidth * 4}
}

func (c *Carousel) SetWidth(width int) {
	if width > 0 {
		c.width = width
	}
}

func (c *Carousel) Focus(focused bool) {
	c.focused = focused
}

func (c *Carousel) Focused() bool {
	return c.focused
}

// SetData replaces what the carousel shows. A change in item count re-arms
// the auto-load trigger.
func (c *Carousel) SetData(items []catalog.MediaItem, loading, hasNext bool, err error) {
	c.items = items
	c.loading = loading
	c.hasNext = hasNext
	c.err = err

	if len(items) != c.lastCount {
		c.lastCount = len(items)
		c.armed = true
	}

	if last := c.slots() - 1; c.cursor > last {
		c.cursor = max(0, last)
	}
	c.offset = min(c.offset, c.maxOffset())
}

func (c *Carousel) Items() []catalog.MediaItem {
	return c.items
}

// slots counts the cursor positions: items plus the load-more slot.
func (c *Carousel) slots() int {
	n := len(c.items)
	if c.hasNext {
		n++
	}
	return n
}

func (c *Carousel) visible() int {
	return max(1, c.width/c.opts.CardWidth)
}

func (c *Carousel) maxOffset() int {
	return max(0, c.slots()-c.visible())
}

func (c *Carousel) scrollWidth() int     { return c.slots() * c.opts.CardWidth }
func (c *Carousel) scrollLeft() int      { return c.offset * c.opts.CardWidth }
func (c *Carousel) clientWidth() int     { return c.width }
func (c *Carousel) scrollIncrement() int { return c.opts.ScrollStep * c.opts.CardWidth }

// remaining is how many columns lie right of the visible area.
func (c *Carousel) remaining() int {
	return c.scrollWidth() - c.scrollLeft() - c.clientWidth()
}

func (c *Carousel) nearEnd() bool {
	return c.remaining() < 2*c.scrollIncrement()
}

// Right moves the cursor right, scrolling by one increment when it leaves
// the visible area, then checks the auto-load trigger.
func (c *Carousel) Right() tea.Cmd {
	if c.cursor >= c.slots()-1 {
		return c.checkAutoLoad()
	}

	c.cursor++
	if c.cursor >= c.offset+c.visible() {
		c.offset = min(c.offset+c.opts.ScrollStep, c.maxOffset())
		c.offset = max(c.offset, c.cursor-c.visible()+1)
	}
	return c.checkAutoLoad()
}

// Left moves the cursor left, scrolling back when needed.
func (c *Carousel) Left() {
	if c.cursor == 0 {
		return
	}

	c.cursor--
	if c.cursor < c.offset {
		c.offset = max(0, c.offset-c.opts.ScrollStep)
		c.offset = min(c.offset, c.cursor)
	}
	if !c.nearEnd() {
		c.armed = true
	}
}

func (c *Carousel) checkAutoLoad() tea.Cmd {
	if !c.nearEnd() {
		c.armed = true
		return nil
	}
	if !c.armed || !c.hasNext || c.loading {
		return nil
	}
	c.armed = false
	return c.loadMore()
}

func (c *Carousel) loadMore() tea.Cmd {
	if c.opts.LoadMore == nil {
		return nil
	}
	return c.opts.LoadMore()
}

// OnLoadMore reports whether the cursor sits on the load-more slot.
func (c *Carousel) OnLoadMore() bool {
	return c.hasNext && c.cursor == len(c.items)
}

// Activate handles enter: the load-more slot loads the next page, a card
// returns its item.
func (c *Carousel) Activate() (mo.Option[catalog.MediaItem], tea.Cmd) {
	if c.OnLoadMore() {
		if c.loading {
			return mo.None[catalog.MediaItem](), nil
		}
		return mo.None[catalog.MediaItem](), c.loadMore()
	}
	return c.Selected(), nil
}

func (c *Carousel) Selected() mo.Option[catalog.MediaItem] {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return mo.None[catalog.MediaItem]()
	}
	return mo.Some(c.items[c.cursor])
}

func (c *Carousel) View() string {
	var b strings.Builder
	b.WriteString(style.Title(c.Title))
	b.WriteString("\n")

	switch {
	case c.err != nil && len(c.items) == 0:
		b.WriteString(style.Fg(style.ErrorColor)(c.err.Error()))
		return b.String()
	case c.loading && len(c.items) == 0:
		b.WriteString(c.placeholders())
		return b.String()
	case len(c.items) == 0:
		b.WriteString(style.Faint(c.opts.EmptyText))
		return b.String()
	}

	cards := make([]string, 0, c.visible())
	for i := c.offset; i < c.offset+c.visible() && i < c.slots(); i++ {
		if i == len(c.items) {
			cards = append(cards, c.loadMoreCard(i == c.cursor))
			continue
		}
		cards = append(cards, c.card(c.items[i], i == c.cursor))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	if c.err != nil {
		b.WriteString("\n")
		b.WriteString(style.Fg(style.ErrorColor)(c.err.Error()))
	}
	return b.String()
}

func (c *Carousel) frame(selected bool) lipgloss.Style {
	frame := style.Card
	if selected && c.focused {
		frame = style.SelectedCard
	}
	return frame.Width(c.opts.CardWidth - 3).MarginRight(1)
}

func (c *Carousel) card(item catalog.MediaItem, selected bool) string {
	inner := uint(c.opts.CardWidth - 5)
	title := truncate.StringWithTail(item.DisplayTitle(), inner, "…")
	meta := item.Year()
	if meta == "" {
		meta = "----"
	}
	rating := fmt.Sprintf("%s %.1f", icon.Get(icon.Star), item.Info().VoteAverage)

	return c.frame(selected).Render(lipgloss.JoinVertical(lipgloss.Left,
		style.Bold(title),
		style.Faint(meta)+"  "+style.Rating(rating),
	))
}

func (c *Carousel) loadMoreCard(selected bool) string {
	text := "Load more"
	if c.loading {
		text = "Loading..."
	}
	return c.frame(selected).Render(lipgloss.JoinVertical(lipgloss.Left, style.Italic(text), ""))
}

func (c *Carousel) placeholders() string {
	long := strings.Repeat("░", c.opts.CardWidth-5)
	short := strings.Repeat("░", (c.opts.CardWidth-5)/2)

	cards := make([]string, 0, c.opts.Placeholders)
	for i := 0; i < c.opts.Placeholders; i++ {
		cards = append(cards, c.frame(false).Render(style.Faint(long)+"\n"+style.Faint(short)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
