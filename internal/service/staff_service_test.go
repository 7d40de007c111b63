package service_test

import (
	"context"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/service"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

func TestStaffServiceLoad(t *testing.T) {
	Convey("Given the staff dashboard", t, func() {
		f := newFixture()
		defer f.close()
		ctx := context.Background()

		f.api.Handle(http.MethodGet, apiclient.PathApprovedTasks, http.StatusOK, map[string]any{
			"tasks": []map[string]any{{"taskId": "T-9", "taskName": "Done", "requestedAt": "2024-01-02T10:00:00Z"}},
		})

		Convey("Each fetch fails on its own", func() {
			f.api.Handle(http.MethodGet, apiclient.PathStaffTasks, http.StatusInternalServerError, map[string]string{"message": "matching offline"})
			f.api.Handle(http.MethodGet, apiclient.PathUserDetails, http.StatusInternalServerError, nil)

			dash := f.staff.Load(ctx, f.caller)

			So(dash.TasksError, ShouldEqual, "matching offline")
			So(dash.ApprovedError, ShouldBeEmpty)
			So(dash.ApprovedTasks, ShouldHaveLength, 1)
			So(dash.Availability.IsSet(), ShouldBeFalse)
		})

		Convey("All three are fetched", func() {
			f.api.Handle(http.MethodGet, apiclient.PathStaffTasks, http.StatusOK, map[string]any{
				"tasks": []map[string]any{{"taskId": "T-1", "percentageMatch": 25}},
			})
			f.api.Handle(http.MethodGet, apiclient.PathUserDetails, http.StatusOK, map[string]any{
				"user": map[string]any{"availability": map[string]string{"startDate": "2024-06-01", "endDate": "2024-06-30"}},
			})

			dash := f.staff.Load(ctx, f.caller)

			So(f.api.Calls(), ShouldHaveLength, 3)
			So(dash.Availability, ShouldResemble, domain.Availability{StartDate: "2024-06-01", EndDate: "2024-06-30"})
			So(dash.Tasks[0].RequestState(), ShouldEqual, domain.RequestStateHidden)
		})
	})
}

func TestStaffServiceMutations(t *testing.T) {
	Convey("Given a staff member acting on the dashboard", t, func() {
		f := newFixture()
		defer f.close()
		ctx := context.Background()
		f.api.Handle(http.MethodGet, apiclient.PathStaffTasks, http.StatusOK, map[string]any{"tasks": []any{}})
		f.api.Handle(http.MethodGet, apiclient.PathUserDetails, http.StatusOK, map[string]any{"user": map[string]any{}})
		f.api.Handle(http.MethodGet, apiclient.PathApprovedTasks, http.StatusOK, map[string]any{"tasks": []any{}})

		offerTasks := func() {
			f.api.Handle(http.MethodGet, apiclient.PathStaffTasks, http.StatusOK, map[string]any{"tasks": []map[string]any{
				{"taskId": "T-1", "percentageMatch": 75},
				{"taskId": "T-2", "percentageMatch": 20},
				{"taskId": "T-3", "percentageMatch": 80, "hasRequested": true},
			}})
		}

		Convey("Requesting a task checks it, posts its id and refetches tasks", func() {
			offerTasks()
			f.api.Handle(http.MethodPost, apiclient.PathStaffRequest, http.StatusOK, map[string]string{"message": "ok"})

			_, err := f.staff.RequestTask(ctx, f.caller, "T-1")

			So(err, ShouldBeNil)
			So(f.api.CallsTo(http.MethodPost, apiclient.PathStaffRequest)[0].JSON(), ShouldResemble, map[string]any{"taskId": "T-1"})
			So(f.api.CallsTo(http.MethodGet, apiclient.PathStaffTasks), ShouldHaveLength, 2)
			So(f.eventTypes(), ShouldContain, events.EventTaskRequested)
		})

		Convey("Tasks without a request control are refused locally", func() {
			offerTasks()
			for _, id := range []string{"T-2", "T-3", "T-404"} {
				_, err := f.staff.RequestTask(ctx, f.caller, id)

				So(apperrors.HasCode(err, apperrors.CodeValidation), ShouldBeTrue)
				So(apperrors.UserMessage(err), ShouldEqual, service.ErrTaskNotRequestable)
			}
			So(f.api.CallsTo(http.MethodPost, apiclient.PathStaffRequest), ShouldBeEmpty)
			So(f.eventTypes(), ShouldNotContain, events.EventTaskRequested)
		})

		Convey("Updating availability posts the window and refetches tasks", func() {
			f.api.Handle(http.MethodPost, apiclient.PathStaffUpdate, http.StatusOK, map[string]string{"message": "ok"})

			_, err := f.staff.UpdateAvailability(ctx, f.caller, domain.Availability{StartDate: "2024-06-01", EndDate: "2024-06-30"})

			So(err, ShouldBeNil)
			So(f.api.CallsTo(http.MethodGet, apiclient.PathStaffTasks), ShouldHaveLength, 1)
		})

		Convey("An incomplete window is refused locally", func() {
			_, err := f.staff.UpdateAvailability(ctx, f.caller, domain.Availability{StartDate: "2024-06-01"})

			So(apperrors.HasCode(err, apperrors.CodeValidation), ShouldBeTrue)
			So(f.api.Calls(), ShouldBeEmpty)
		})

		Convey("A refused request surfaces the message and skips the refetch", func() {
			offerTasks()
			f.api.Handle(http.MethodPost, apiclient.PathStaffRequest, http.StatusBadRequest, map[string]string{"message": "Already requested"})

			_, err := f.staff.RequestTask(ctx, f.caller, "T-1")

			So(apperrors.UserMessage(err), ShouldEqual, "Already requested")
			So(f.api.CallsTo(http.MethodGet, apiclient.PathStaffTasks), ShouldHaveLength, 1)
		})
	})
}
