package log

import (
	"testing"

	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/key"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("WithFields still returns a usable entry", func() {
			entry := WithFields(logrus.Fields{"resource": "popular-movies"})
			So(entry, ShouldNotBeNil)
			So(entry.Data["resource"], ShouldEqual, "popular-movies")
		})

		Convey("Proxies are silent no-ops", func() {
			So(func() { Infof("page %d", 1) }, ShouldNotPanic)
			So(func() { Error("boom") }, ShouldNotPanic)
		})
	})
}
