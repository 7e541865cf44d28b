package query

import (
	"testing"

	"github.com/marquee-cli/marquee/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		Forget()

		Remember("The Matrix", 1)
		Remember("breaking bad", 10)
		Remember("matrix reloaded", 1)

		Convey("Suggestions are ranked, then most recent first", func() {
			So(SuggestMany("mat"), ShouldResemble, []string{"matrix reloaded", "the matrix"})
			So(Suggest("bad").MustGet(), ShouldEqual, "breaking bad")
		})

		Convey("Remembering again raises the rank", func() {
			Remember("  THE MATRIX ", 5)
			So(Suggest("mat").MustGet(), ShouldEqual, "the matrix")
		})

		Convey("Blank input suggests nothing", func() {
			Remember("   ", 1)
			So(SuggestMany(""), ShouldBeEmpty)
			So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Suggestions can be turned off", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("mat"), ShouldBeEmpty)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  NARUTO  "), ShouldEqual, "naruto")
		})
	})
}
