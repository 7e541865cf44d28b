package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestAPIKey(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()

		Convey("An empty keyring reports ErrNoAPIKey", func() {
			_, err := GetAPIKey()
			So(err, ShouldEqual, ErrNoAPIKey)
		})

		Convey("A stored key can be read back trimmed", func() {
			So(SetAPIKey("  abc123\n"), ShouldBeNil)
			apiKey, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(apiKey, ShouldEqual, "abc123")

			Convey("And deleted", func() {
				So(DeleteAPIKey(), ShouldBeNil)
				_, err := GetAPIKey()
				So(err, ShouldEqual, ErrNoAPIKey)
			})
		})

		Convey("Blank keys are rejected", func() {
			So(SetAPIKey("   "), ShouldNotBeNil)
		})

		Convey("Deleting a missing key is fine", func() {
			So(DeleteAPIKey(), ShouldBeNil)
		})
	})
}
