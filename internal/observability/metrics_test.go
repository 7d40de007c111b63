package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/config"
	"github.com/spec-kit/staffing-portal/internal/observability"
)

func TestMetrics(t *testing.T) {
	Convey("Given a metrics registry", t, func() {
		m := observability.NewMetrics("portal_test")

		Convey("Remote calls and events are counted", func() {
			m.RecordRemoteCall("/staff-tasks", http.MethodGet, "ok", 20*time.Millisecond)
			m.RecordRemoteCall("/staff-tasks", http.MethodGet, "transport", time.Millisecond)
			m.RecordEvent("task.created")
			m.RecordSession("load", errors.New("boom"))

			So(seriesCount(m, "portal_test_api_calls_total"), ShouldEqual, 2)
			So(seriesCount(m, "portal_test_audit_events_total"), ShouldEqual, 1)
			So(seriesCount(m, "portal_test_session_operations_total"), ShouldEqual, 1)
		})

		Convey("The exposition handler serves the registry", func() {
			m.RecordError("/dashboard", http.MethodGet, "TRANSPORT_FAILED")
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "portal_test_http_errors_total")
		})

		Convey("A nil Metrics records nothing and does not panic", func() {
			var nilMetrics *observability.Metrics
			So(func() {
				nilMetrics.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
				nilMetrics.RecordEvent("x")
			}, ShouldNotPanic)
		})
	})
}

func TestRequestLogger(t *testing.T) {
	Convey("Given an app with the request logger", t, func() {
		m := observability.NewMetrics("portal_rl")
		app := fiber.New()
		app.Use(observability.RequestLogger(zap.NewNop(), m))
		app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		So(err, ShouldBeNil)
		body, _ := io.ReadAll(resp.Body)

		So(string(body), ShouldEqual, "pong")
		So(seriesCount(m, "portal_rl_http_requests_total"), ShouldEqual, 1)
	})
}

func TestNewLogger(t *testing.T) {
	Convey("An unknown level falls back to info", t, func() {
		logger, err := observability.NewLogger(config.LoggerConfig{Level: "loud"})
		So(err, ShouldBeNil)
		So(logger.Core().Enabled(zap.InfoLevel), ShouldBeTrue)
		So(logger.Core().Enabled(zap.DebugLevel), ShouldBeFalse)
	})
}

func seriesCount(m *observability.Metrics, name string) int {
	families, err := m.Registry().Gather()
	So(err, ShouldBeNil)
	for _, family := range families {
		if family.GetName() == name {
			return len(family.GetMetric())
		}
	}
	return 0
}
