package persistence

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/config"
)

func TestSessionClientOptions(t *testing.T) {
	Convey("Given redis settings for the session store", t, func() {
		opts := SessionClientOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 3}, "staffing-portal")

		Convey("Connection values are carried over", func() {
			So(opts.Addr, ShouldEqual, "cache:6379")
			So(opts.Password, ShouldEqual, "pw")
			So(opts.DB, ShouldEqual, 3)
		})

		Convey("Lookups fail fast and the client names itself", func() {
			So(opts.DialTimeout, ShouldEqual, 2*time.Second)
			So(opts.ReadTimeout, ShouldEqual, 500*time.Millisecond)
			So(opts.WriteTimeout, ShouldEqual, 500*time.Millisecond)
			So(opts.ClientName, ShouldEqual, "staffing-portal-sessions")
		})
	})
}
