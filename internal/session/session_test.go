package session_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/apitest"
	"github.com/spec-kit/staffing-portal/internal/session"
)

func newSessionApp(store session.Store) *fiber.App {
	manager := session.NewManager(store, session.Options{CookieName: "sid"}, zap.NewNop(), nil)
	app := fiber.New()
	app.Use(manager.Middleware())
	app.Post("/set", func(c *fiber.Ctx) error {
		if err := session.FromContext(c).Set(c.FormValue("token")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		s := session.FromContext(c)
		if s.IsValid() {
			return c.SendString("valid:" + s.Get())
		}
		return c.SendString("invalid:" + s.Get())
	})
	app.Post("/clear", func(c *fiber.Ctx) error {
		if err := session.FromContext(c).Clear(); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func formRequest(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path+"?token="+token, nil)
	return req
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	Convey("Given an app using the session middleware", t, func() {
		store := session.NewMemoryStore()
		app := newSessionApp(store)
		token := apitest.ValidToken("staff")

		resp, err := app.Test(formRequest("/set", token))
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, fiber.StatusNoContent)
		cookie := findCookie(resp, "sid")
		So(cookie, ShouldNotBeNil)
		So(cookie.HttpOnly, ShouldBeTrue)
		So(store.Len(), ShouldEqual, 1)

		Convey("The cookie brings the stored token back", func() {
			req := httptest.NewRequest(http.MethodGet, "/get", nil)
			req.AddCookie(cookie)
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, "valid:"+token)
		})

		Convey("Storing again rotates the id and keeps a single token", func() {
			next := apitest.ValidToken("manager")
			req := formRequest("/set", next)
			req.AddCookie(cookie)
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			So(store.Len(), ShouldEqual, 1)

			rotated := findCookie(resp, "sid")
			So(rotated, ShouldNotBeNil)
			So(rotated.Value, ShouldNotEqual, cookie.Value)
			_, err = store.Load(context.Background(), cookie.Value)
			So(err, ShouldEqual, session.ErrNotFound)
		})

		Convey("Clear deletes the token and expires the cookie", func() {
			req := httptest.NewRequest(http.MethodPost, "/clear", nil)
			req.AddCookie(cookie)
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			So(store.Len(), ShouldEqual, 0)
			cleared := findCookie(resp, "sid")
			So(cleared, ShouldNotBeNil)
			So(cleared.Value, ShouldEqual, "")
		})

		Convey("An expired token is present but not valid", func() {
			expired := apitest.ExpiredToken("staff")
			req := formRequest("/set", expired)
			req.AddCookie(cookie)
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			rotated := findCookie(resp, "sid")
			So(rotated, ShouldNotBeNil)

			get := httptest.NewRequest(http.MethodGet, "/get", nil)
			get.AddCookie(rotated)
			resp, err = app.Test(get)
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, "invalid:"+expired)
		})
	})

	Convey("An unknown cookie yields an empty session", t, func() {
		app := newSessionApp(session.NewMemoryStore())
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "forgotten"})
		resp, err := app.Test(req)
		So(err, ShouldBeNil)
		body, _ := io.ReadAll(resp.Body)
		So(string(body), ShouldEqual, "invalid:")
	})

	Convey("A cookie id chosen before login is never adopted", t, func() {
		store := session.NewMemoryStore()
		app := newSessionApp(store)
		req := formRequest("/set", apitest.ValidToken("manager"))
		req.AddCookie(&http.Cookie{Name: "sid", Value: "attacker-chosen-id"})
		resp, err := app.Test(req)
		So(err, ShouldBeNil)

		issued := findCookie(resp, "sid")
		So(issued, ShouldNotBeNil)
		So(issued.Value, ShouldNotEqual, "attacker-chosen-id")
		_, err = store.Load(context.Background(), "attacker-chosen-id")
		So(err, ShouldEqual, session.ErrNotFound)
		So(store.Len(), ShouldEqual, 1)
	})
}
