package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/config"
)

func TestLoad(t *testing.T) {
	Convey("Given the portal configuration loader", t, func() {
		for _, key := range []string{
			"PORTAL_CONFIG_FILE", "APP_PORT", "API_BASE_URL", "SESSION_STORE",
			"POSTGRES_DSN", "REDIS_DB", "LOG_LEVEL", "API_TIMEOUT_SECONDS",
		} {
			t.Setenv(key, "")
		}

		Convey("When nothing is overridden", func() {
			cfg, err := config.Load()

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.App.Addr(), ShouldEqual, "0.0.0.0:3000")
				So(cfg.Session.Store, ShouldEqual, config.SessionStoreMemory)
				So(cfg.Session.CookieName, ShouldEqual, "portal_session")
				So(cfg.API.Timeout(), ShouldEqual, 10*time.Second)
				So(cfg.App.RequestTimeout(), ShouldEqual, 30*time.Second)
			})
		})

		Convey("When environment variables are set", func() {
			t.Setenv("APP_PORT", "8088")
			t.Setenv("API_BASE_URL", "https://api.example.test/prod")
			t.Setenv("SESSION_STORE", "REDIS")
			t.Setenv("API_TIMEOUT_SECONDS", "4")

			cfg, err := config.Load()

			Convey("Then they override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.App.Port, ShouldEqual, "8088")
				So(cfg.API.BaseURL, ShouldEqual, "https://api.example.test/prod")
				So(cfg.Session.Store, ShouldEqual, config.SessionStoreRedis)
				So(cfg.API.Timeout(), ShouldEqual, 4*time.Second)
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "portal.yaml")
			content := `
app:
  port: "9090"
api:
  base_url: "https://file.example.test"
logger:
  level: debug
`
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
			t.Setenv("PORTAL_CONFIG_FILE", path)

			Convey("Then file values apply", func() {
				cfg, err := config.Load()
				So(err, ShouldBeNil)
				So(cfg.App.Port, ShouldEqual, "9090")
				So(cfg.API.BaseURL, ShouldEqual, "https://file.example.test")
				So(cfg.Logger.Level, ShouldEqual, "debug")
			})

			Convey("And env still wins over the file", func() {
				t.Setenv("APP_PORT", "7070")
				cfg, err := config.Load()
				So(err, ShouldBeNil)
				So(cfg.App.Port, ShouldEqual, "7070")
			})
		})

		Convey("When the postgres store is selected without a DSN", func() {
			t.Setenv("SESSION_STORE", "postgres")

			_, err := config.Load()

			Convey("Then loading fails as invalid", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When REDIS_DB is not a number", func() {
			t.Setenv("REDIS_DB", "zero")

			_, err := config.Load()

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
