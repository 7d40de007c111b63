package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/api/dto"
	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/auth"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/service"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// ManagerHandler serves the manager dashboard.
type ManagerHandler struct {
	Pages
	tasks  *service.TaskService
	assign *service.AssignmentService
}

// NewManagerHandler constructs handler.
func NewManagerHandler(pages Pages, tasks *service.TaskService, assign *service.AssignmentService) *ManagerHandler {
	return &ManagerHandler{Pages: pages, tasks: tasks, assign: assign}
}

// Dashboard handles GET /dashboard. Only the active tab is fetched.
// ?assign=<taskId> opens the assignment dialog and ?addTask=1 the intake form.
func (h *ManagerHandler) Dashboard(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	ctx := c.UserContext()

	tab := service.ParseTab(c.Query("tab"))
	taskID := strings.TrimSpace(c.Query("assign"))
	addTask := c.Query("addTask") != ""
	if taskID != "" || addTask {
		tab = service.TabOpenTasks
	}

	page := h.page(h.tasks.LoadTab(ctx, caller, tab))
	if taskID != "" {
		dialog := h.assign.OpenAssignDialog(ctx, caller, taskID, findTask(page.State.Tasks, taskID))
		page.Dialog = &dialog
	}
	page.AddTaskOpen = addTask
	return h.Views.Render(c, http.StatusOK, views.PageManagerDashboard, page)
}

// CreateTask handles POST /dashboard/tasks.
func (h *ManagerHandler) CreateTask(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	var req dto.TaskForm
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	form := service.TaskForm{
		TaskID:         req.TaskID,
		ProjectID:      req.ProjectID,
		TaskName:       req.TaskName,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RequiredSkills: req.RequiredSkills,
		Status:         domain.TaskStatus(req.Status),
	}

	ctx := c.UserContext()
	state, err := h.tasks.AddTask(ctx, caller, form)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		page := h.page(h.tasks.LoadTab(ctx, caller, service.TabOpenTasks))
		page.AddTaskOpen = true
		page.TaskForm = form
		page.TaskFormErr = apperrors.UserMessage(err)
		return h.Views.Render(c, formStatus(err), views.PageManagerDashboard, page)
	}

	page := h.page(state)
	page.Notice = NoticeTaskCreated
	return h.Views.Render(c, http.StatusOK, views.PageManagerDashboard, page)
}

// AssignTask handles POST /dashboard/assign. A failed assignment reopens
// the dialog with freshly fetched candidates and the choice kept.
func (h *ManagerHandler) AssignTask(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	var form dto.AssignForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}

	ctx := c.UserContext()
	state, err := h.assign.ConfirmAssignment(ctx, caller, form.TaskID, form.Email)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		page := h.page(h.tasks.LoadTab(ctx, caller, service.TabOpenTasks))
		if taskID := strings.TrimSpace(form.TaskID); taskID != "" {
			dialog := h.assign.OpenAssignDialog(ctx, caller, taskID, findTask(page.State.Tasks, taskID))
			dialog.Selected = form.Email
			dialog.Error = apperrors.UserMessage(err)
			page.Dialog = &dialog
		} else {
			page.ActionError = apperrors.UserMessage(err)
		}
		return h.Views.Render(c, formStatus(err), views.PageManagerDashboard, page)
	}

	page := h.page(state)
	page.Notice = NoticeTaskAssigned
	return h.Views.Render(c, http.StatusOK, views.PageManagerDashboard, page)
}

// ResolveRequest handles POST /dashboard/requests/resolve.
func (h *ManagerHandler) ResolveRequest(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return auth.Redirect(c, domain.EntryPath)
	}
	var form dto.ResolveForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid form", nil)
	}
	action := domain.RequestAction(form.Action)

	ctx := c.UserContext()
	state, err := h.tasks.ResolveRequest(ctx, caller, form.TaskID, form.Email, action)
	if err != nil {
		if !userFacing(err) {
			return err
		}
		page := h.page(h.tasks.LoadTab(ctx, caller, service.TabStaffRequests))
		page.ActionError = apperrors.UserMessage(err)
		return h.Views.Render(c, formStatus(err), views.PageManagerDashboard, page)
	}

	page := h.page(state)
	page.Notice = fmt.Sprintf("Request %s successfully!", action.PastTense())
	return h.Views.Render(c, http.StatusOK, views.PageManagerDashboard, page)
}

func (h *ManagerHandler) page(state service.TabState) views.ManagerPage {
	return views.ManagerPage{
		Layout:       h.layout("Manager Dashboard", true),
		State:        state,
		TaskForm:     service.DefaultTaskForm(),
		TaskStatuses: domain.TaskStatuses,
	}
}

func findTask(tasks []domain.Task, taskID string) *domain.Task {
	for i := range tasks {
		if tasks[i].TaskID == taskID {
			return &tasks[i]
		}
	}
	return nil
}
