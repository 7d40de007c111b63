package persistence

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
)

func TestMigrations(t *testing.T) {
	Convey("Given the embedded migrations", t, func() {
		names, err := MigrationNames()
		So(err, ShouldBeNil)

		Convey("They are listed in order and readable", func() {
			So(names, ShouldNotBeEmpty)
			So(names[0], ShouldEqual, "0001_portal_sessions.sql")
			content, err := migrationFiles.ReadFile(migrationsDir + "/" + names[0])
			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, "portal_sessions")
		})

		Convey("Running without a pool is a no-op", func() {
			So(RunMigrations(context.Background(), nil, zap.NewNop()), ShouldBeNil)
		})
	})
}
