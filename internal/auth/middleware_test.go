package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/staffing-portal/internal/apitest"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/session"
)

type guardFixture struct {
	app     *fiber.App
	store   *session.MemoryStore
	expired []events.Event
	logs    *observer.ObservedLogs
}

func newGuardFixture() *guardFixture {
	f := &guardFixture{store: session.NewMemoryStore()}
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventSessionExpired, func(_ context.Context, e events.Event) error {
		f.expired = append(f.expired, e)
		return nil
	})

	manager := session.NewManager(f.store, session.Options{CookieName: "sid"}, zap.NewNop(), nil)
	core, logs := observer.New(zapcore.InfoLevel)
	f.logs = logs
	guard := auth.NewGuard(zap.New(core), dispatcher)

	f.app = fiber.New()
	f.app.Use(manager.Middleware())
	f.app.Get("/dashboard", guard.Handle, auth.RequireRole(domain.RoleManager), func(c *fiber.Ctx) error {
		p, _ := auth.PrincipalFromContext(c)
		return c.SendString("manager:" + string(p.Role))
	})
	f.app.Get("/staffdashboard", guard.Handle, auth.RequireRole(domain.RoleStaff), func(c *fiber.Ctx) error {
		return c.SendString("staff")
	})
	f.app.Post("/dashboard/tasks", guard.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return f
}

func (f *guardFixture) request(method, path, token string) *http.Response {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		So(f.store.Save(context.Background(), "sid-1", token, 0), ShouldBeNil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	}
	resp, err := f.app.Test(req)
	So(err, ShouldBeNil)
	return resp
}

func TestGuard(t *testing.T) {
	Convey("Given protected dashboards", t, func() {
		f := newGuardFixture()

		Convey("No token redirects to the entry page", func() {
			resp := f.request(http.MethodGet, "/dashboard", "")
			So(resp.StatusCode, ShouldEqual, fiber.StatusFound)
			So(resp.Header.Get("Location"), ShouldEqual, "/")
		})

		Convey("An undecodable token is cleared and redirected", func() {
			resp := f.request(http.MethodGet, "/dashboard", "garbage")
			So(resp.StatusCode, ShouldEqual, fiber.StatusFound)
			So(resp.Header.Get("Location"), ShouldEqual, "/")
			So(f.store.Len(), ShouldEqual, 0)
			So(f.expired, ShouldHaveLength, 1)

			rejected := f.logs.FilterMessage("session rejected").All()
			So(rejected, ShouldHaveLength, 1)
			So(rejected[0].ContextMap()["error"], ShouldEqual, "session token undecodable")
		})

		Convey("An expired token is cleared and redirected", func() {
			resp := f.request(http.MethodGet, "/staffdashboard", apitest.ExpiredToken("staff"))
			So(resp.Header.Get("Location"), ShouldEqual, "/")
			So(f.store.Len(), ShouldEqual, 0)
		})

		Convey("A valid manager token reaches the manager dashboard", func() {
			resp := f.request(http.MethodGet, "/dashboard", apitest.ValidToken("manager"))
			So(resp.StatusCode, ShouldEqual, fiber.StatusOK)
		})

		Convey("A staff token on the manager dashboard goes to its own dashboard", func() {
			resp := f.request(http.MethodGet, "/dashboard", apitest.ValidToken("staff"))
			So(resp.StatusCode, ShouldEqual, fiber.StatusFound)
			So(resp.Header.Get("Location"), ShouldEqual, "/staffdashboard")
		})

		Convey("An unknown role is treated as a manager", func() {
			resp := f.request(http.MethodGet, "/staffdashboard", apitest.ValidToken("admin"))
			So(resp.Header.Get("Location"), ShouldEqual, "/dashboard")
		})

		Convey("A rejected POST redirects with 303", func() {
			resp := f.request(http.MethodPost, "/dashboard/tasks", apitest.ExpiredToken("manager"))
			So(resp.StatusCode, ShouldEqual, fiber.StatusSeeOther)
		})
	})
}
