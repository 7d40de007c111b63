package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/api/dto"
	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/service"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// StaffHandler serves the staff dashboard.
type StaffHandler struct {
	Pages
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(pages Pages, staff *service.StaffService) *StaffHandler {
	return &StaffHandler{Pages: pages, staff: staff}
}

// Dashboard handles GET /staffdashboard. ?editAvailability=1 opens the
// availability form and ?approved=1 the approved tasks dialog.
func (h *StaffHandler) Dashboard(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	page := h.page(h.staff.Load(c.UserContext(), caller))
	page.EditAvailability = c.Query("editAvailability") != ""
	page.ShowApproved = c.Query("approved") != ""
	return h.Views.Render(c, http.StatusOK, views.PageStaffDashboard, page)
}

// UpdateAvailability handles POST /staffdashboard/availability.
func (h *StaffHandler) UpdateAvailability(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	var form dto.AvailabilityForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	availability := domain.Availability{StartDate: form.StartDate, EndDate: form.EndDate}

	ctx := c.UserContext()
	dash, err := h.staff.UpdateAvailability(ctx, caller, availability)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		page := h.page(h.staff.Load(ctx, caller))
		page.EditAvailability = true
		page.AvailabilityForm = availability
		page.AvailabilityErr = apperrors.UserMessage(err)
		return h.Views.Render(c, formStatus(err), views.PageStaffDashboard, page)
	}

	page := h.page(dash)
	page.Notice = NoticeAvailabilityUpdated
	return h.Views.Render(c, http.StatusOK, views.PageStaffDashboard, page)
}

// RequestTask handles POST /staffdashboard/request.
func (h *StaffHandler) RequestTask(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	var form dto.TaskRequestForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}

	ctx := c.UserContext()
	dash, err := h.staff.RequestTask(ctx, caller, form.TaskID)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		page := h.page(h.staff.Load(ctx, caller))
		page.ActionError = apperrors.UserMessage(err)
		return h.Views.Render(c, formStatus(err), views.PageStaffDashboard, page)
	}

	page := h.page(dash)
	page.Notice = NoticeTaskRequested
	return h.Views.Render(c, http.StatusOK, views.PageStaffDashboard, page)
}

func (h *StaffHandler) page(dash service.StaffDashboard) views.StaffPage {
	return views.StaffPage{
		Layout:           h.layout("Staff Dashboard", true),
		Dashboard:        dash,
		AvailabilityForm: dash.Availability,
	}
}
