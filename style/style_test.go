package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRenderers(t *testing.T) {
	Convey("Given plain text", t, func() {
		text := "Fight Club"

		Convey("Render functions keep the text", func() {
			for _, render := range []func(string) string{Bold, Faint, Title, ErrorTitle, Rating, Match} {
				So(render(text), ShouldContainSubstring, text)
			}
		})

		Convey("Card frames add a border", func() {
			So(lipgloss.Height(Card.Render(text)), ShouldEqual, 3)
			So(lipgloss.Height(SelectedCard.Render(text)), ShouldEqual, 3)
		})
	})
}
