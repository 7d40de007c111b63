package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/service"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// Notices shown after a successful submission.
const (
	NoticeTaskCreated         = "Task created successfully!"
	NoticeTaskAssigned        = "Task assigned successfully!"
	NoticeAvailabilityUpdated = "Availability updated successfully!"
	NoticeTaskRequested       = "Task request submitted successfully!"
)

// Pages bundles what every page handler needs to render.
type Pages struct {
	Views   *views.Renderer
	AppName string
}

func (p Pages) layout(title string, loggedIn bool) views.Layout {
	return views.Layout{AppName: p.AppName, Title: title, LoggedIn: loggedIn}
}

func callerFrom(c *fiber.Ctx) (service.Caller, bool) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{Token: principal.Token, SessionID: principal.SessionID, Role: principal.Role}, true
}

// userFacing reports whether err belongs inline on the page that caused it.
// Anything else goes to the error page.
func userFacing(err error) bool {
	switch apperrors.ToDomainError(err).Code {
	case apperrors.CodeValidation, apperrors.CodeBusy, apperrors.CodeTransport, apperrors.CodeRemoteRejected:
		return true
	default:
		return false
	}
}

// formStatus picks the status a re-rendered form is sent with.
func formStatus(err error) int {
	de := apperrors.ToDomainError(err)
	switch de.Code {
	case apperrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.CodeBusy:
		return http.StatusConflict
	case apperrors.CodeTransport:
		return http.StatusBadGateway
	case apperrors.CodeRemoteRejected:
		switch {
		case de.HTTPStatus >= 500:
			return http.StatusBadGateway
		case de.HTTPStatus >= 400:
			return de.HTTPStatus
		default:
			return http.StatusUnprocessableEntity
		}
	default:
		return http.StatusInternalServerError
	}
}
