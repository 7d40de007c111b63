package service_test

import (
	"context"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/apitest"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/service"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

func TestAuthServiceLogin(t *testing.T) {
	Convey("Given the auth service", t, func() {
		f := newFixture()
		defer f.close()
		ctx := context.Background()
		store := &memoryTokenStore{}

		Convey("A staff login stores the token and lands on the staff dashboard", func() {
			token := apitest.ValidToken("staff")
			f.api.Handle(http.MethodPost, apiclient.PathStaffLogin, http.StatusOK, map[string]string{"token": token})

			result, err := f.auth.Login(ctx, store, domain.AuthModeStaffLogin, "s@x.test", "pw")

			So(err, ShouldBeNil)
			So(store.token, ShouldEqual, token)
			So(result.Redirect, ShouldEqual, domain.StaffDashboardPath)
			So(f.eventTypes(), ShouldContain, events.EventLoggedIn)
		})

		Convey("The token's role decides the landing page", func() {
			f.api.Handle(http.MethodPost, apiclient.PathStaffLogin, http.StatusOK,
				map[string]string{"token": apitest.ValidToken("manager")})

			result, err := f.auth.Login(ctx, store, domain.AuthModeStaffLogin, "m@x.test", "pw")

			So(err, ShouldBeNil)
			So(result.Redirect, ShouldEqual, domain.ManagerDashboardPath)
		})

		Convey("A rejected login shows the server message and stores nothing", func() {
			f.api.Handle(http.MethodPost, apiclient.PathManagerLogin, http.StatusUnauthorized,
				map[string]string{"message": "Invalid credentials"})

			_, err := f.auth.Login(ctx, store, domain.AuthModeManagerLogin, "m@x.test", "wrong")

			So(apperrors.UserMessage(err), ShouldEqual, "Invalid credentials")
			So(store.token, ShouldBeEmpty)
		})

		Convey("Logout clears the token", func() {
			store.token, store.id = "t", "sid"
			So(f.auth.Logout(ctx, store, domain.RoleStaff), ShouldBeNil)
			So(store.token, ShouldBeEmpty)
			So(f.eventTypes(), ShouldContain, events.EventLoggedOut)
		})
	})
}

func TestAuthServiceRegistration(t *testing.T) {
	Convey("Given the auth service", t, func() {
		f := newFixture()
		defer f.close()
		ctx := context.Background()

		Convey("Skills that parse to nothing are refused without a network call", func() {
			err := f.auth.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@x.test", Password: "pw", Skills: " , ,"})

			So(apperrors.HasCode(err, apperrors.CodeValidation), ShouldBeTrue)
			So(apperrors.UserMessage(err), ShouldEqual, "At least one skill is required")
			So(f.api.Calls(), ShouldBeEmpty)
		})

		Convey("A registration sends the parsed skills", func() {
			f.api.Handle(http.MethodPost, apiclient.PathStaffRegister, http.StatusOK, map[string]string{"message": "OTP sent"})

			err := f.auth.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@x.test", Password: "pw", Skills: "Go, SQL ,"})

			So(err, ShouldBeNil)
			body := f.api.CallsTo(http.MethodPost, apiclient.PathStaffRegister)[0].JSON()
			So(body["skills"], ShouldResemble, []any{"Go", "SQL"})
			So(body["name"], ShouldEqual, "Ada")
		})

		Convey("A failed OTP surfaces the server message", func() {
			f.api.Handle(http.MethodPost, apiclient.PathStaffVerify, http.StatusBadRequest, map[string]string{"message": "Invalid OTP"})

			err := f.auth.VerifyOTP(ctx, "ada@x.test", "000000")

			So(apperrors.UserMessage(err), ShouldEqual, "Invalid OTP")
		})

		Convey("A valid OTP is accepted", func() {
			f.api.Handle(http.MethodPost, apiclient.PathStaffVerify, http.StatusOK, map[string]string{})

			So(f.auth.VerifyOTP(ctx, "ada@x.test", "123456"), ShouldBeNil)
			So(f.api.CallsTo(http.MethodPost, apiclient.PathStaffVerify)[0].JSON()["otp"], ShouldEqual, "123456")
		})
	})
}
