package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marquee-cli/marquee/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestWhere(t *testing.T) {
	Convey("Given a custom config path", t, func() {
		custom := filepath.Join(os.TempDir(), "marquee-where-test")
		So(os.Setenv(EnvConfigPath, custom), ShouldBeNil)
		defer os.Unsetenv(EnvConfigPath)

		Convey("Config should honour the override", func() {
			So(Config(), ShouldEqual, custom)
		})

		Convey("Logs should live under the config directory", func() {
			So(Logs(), ShouldEqual, filepath.Join(custom, "logs"))

			exists, err := filesystem.API().DirExists(Logs())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})

	Convey("Temp and Cache should end with the application name", t, func() {
		So(filepath.Base(Temp()), ShouldEqual, "marquee")
		So(filepath.Base(Cache()), ShouldEqual, "marquee")
		So(Cache(), ShouldNotEqual, Temp())
	})
}
