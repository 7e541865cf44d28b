package open

import (
	"testing"

	"github.com/marquee-cli/marquee/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a trailer URL", t, func() {
		url := "https://www.youtube.com/watch?v=abc"

		Convey("Linux uses xdg-open", func() {
			cmd, err := command(constant.Linux, url)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})
		})

		Convey("macOS uses open", func() {
			cmd, err := command(constant.Darwin, url)
			So(err, ShouldBeNil)
			So(cmd.Args[0], ShouldEqual, "open")
		})

		Convey("Unknown systems are rejected", func() {
			_, err := command("plan9", url)
			So(err, ShouldNotBeNil)
		})
	})
}
