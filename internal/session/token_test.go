package session_test

import (
	"encoding/base64"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/apitest"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/session"
)

func TestDecodeSession(t *testing.T) {
	Convey("Given tokens in various shapes", t, func() {
		Convey("A well formed token yields role and expiry", func() {
			exp := time.Now().Add(time.Hour).Truncate(time.Second)
			claims, err := session.DecodeSession(apitest.MintToken("staff", exp))
			So(err, ShouldBeNil)
			So(claims.Role, ShouldEqual, domain.RoleStaff)
			So(claims.ExpiresAt().Unix(), ShouldEqual, exp.Unix())
			So(claims.Expired(time.Now()), ShouldBeFalse)
		})

		Convey("The signature is not checked", func() {
			token := apitest.ValidToken("manager")
			tampered := token[:len(token)-4] + "AAAA"
			claims, err := session.DecodeSession(tampered)
			So(err, ShouldBeNil)
			So(claims.Role, ShouldEqual, domain.RoleManager)
		})

		Convey("Garbage fails to decode", func() {
			for _, raw := range []string{"", "not-a-token", "a.b", "a.!!!.c"} {
				_, err := session.DecodeSession(raw)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("A payload without exp decodes and never expires", func() {
			payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"staff"}`))
			claims, err := session.DecodeSession("eyJhbGciOiJIUzI1NiJ9." + payload + ".sig")
			So(err, ShouldBeNil)
			So(claims.Role, ShouldEqual, domain.RoleStaff)
			So(claims.ExpiresAt().IsZero(), ShouldBeTrue)
			So(claims.Expired(time.Now().Add(100*365*24*time.Hour)), ShouldBeFalse)
		})

		Convey("Expiry compares exp*1000 against the current millisecond", func() {
			exp := time.Unix(1_700_000_000, 0)
			claims, err := session.DecodeSession(apitest.MintToken("staff", exp))
			So(err, ShouldBeNil)
			So(claims.Expired(exp), ShouldBeFalse)
			So(claims.Expired(exp.Add(time.Millisecond)), ShouldBeTrue)
		})
	})
}
