package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/inflight"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// Tab is a manager dashboard tab.
type Tab string

const (
	TabOpenTasks     Tab = "openTasks"
	TabStaffRequests Tab = "staffRequests"
)

// ParseTab maps a query value onto a tab, defaulting to open tasks.
func ParseTab(raw string) Tab {
	if Tab(raw) == TabStaffRequests {
		return TabStaffRequests
	}
	return TabOpenTasks
}

// Label is the human name of the tab.
func (t Tab) Label() string {
	if t == TabStaffRequests {
		return "staff requests"
	}
	return "open tasks"
}

// TabState is what one activation of a tab fetched. Only the active tab's
// collection is populated; Error belongs to that tab alone.
type TabState struct {
	Tab      Tab
	Tasks    []domain.Task
	Requests []domain.StaffRequest
	Error    string
}

// Submission actions guarded against duplicates.
const (
	ActionAddTask        = "add-task"
	ActionAssignTask     = "assign-task"
	ActionResolveRequest = "resolve-request"
	ActionUpdateAvail    = "update-availability"
	ActionRequestTask    = "request-task"
)

// TaskForm is the raw task intake form.
type TaskForm struct {
	TaskID         string
	ProjectID      string
	TaskName       string
	StartDate      string
	EndDate        string
	RequiredSkills string
	Status         domain.TaskStatus
}

// DefaultTaskForm is the empty form, status preset to Open.
func DefaultTaskForm() TaskForm {
	return TaskForm{Status: domain.TaskStatusOpen}
}

// Payload validates the form and builds the creation request.
func (f TaskForm) Payload() (domain.NewTask, error) {
	task := domain.NewTask{
		TaskID:    strings.TrimSpace(f.TaskID),
		ProjectID: strings.TrimSpace(f.ProjectID),
		TaskName:  strings.TrimSpace(f.TaskName),
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
		Status:    f.Status,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}
	if !task.Status.Valid() {
		return domain.NewTask{}, apperrors.NewValidationError("Status must be Open, Assigned or Completed",
			map[string]any{"field": "status"})
	}

	var missing []string
	for _, field := range []struct{ name, value string }{
		{"taskId", task.TaskID},
		{"projectId", task.ProjectID},
		{"taskName", task.TaskName},
		{"startDate", task.StartDate},
		{"endDate", task.EndDate},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domain.NewTask{}, apperrors.NewValidationError("All fields are required",
			map[string]any{"missing": missing})
	}

	task.RequiredSkills = domain.ParseSkills(f.RequiredSkills)
	if !domain.HasEnoughSkills(task.RequiredSkills) {
		return domain.NewTask{}, apperrors.NewValidationError(domain.ErrSkillsRequired,
			map[string]any{"field": "requiredSkills"})
	}
	return task, nil
}

// TaskService drives the manager dashboard tabs, task intake and request
// resolution.
type TaskService struct {
	api       ManagerAPI
	gate      *inflight.Gate
	publisher events.Publisher
	logger    *zap.Logger
}

// TaskDependencies bundles requirements for the task service.
type TaskDependencies struct {
	API        ManagerAPI
	Gate       *inflight.Gate
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTaskService creates the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gate := deps.Gate
	if gate == nil {
		gate = inflight.NewGate()
	}
	return &TaskService{api: deps.API, gate: gate, publisher: newPublisher(deps.Dispatcher, logger), logger: logger}
}

// LoadTab fetches the collection behind tab and nothing else.
func (s *TaskService) LoadTab(ctx context.Context, caller Caller, tab Tab) TabState {
	state := TabState{Tab: tab}
	switch tab {
	case TabStaffRequests:
		requests, err := s.api.StaffRequests(ctx, caller.Token)
		if err != nil {
			state.Error = apperrors.UserMessage(err)
			return state
		}
		state.Requests = requests
	default:
		state.Tab = TabOpenTasks
		tasks, err := s.api.ManagerTasks(ctx, caller.Token)
		if err != nil {
			state.Error = apperrors.UserMessage(err)
			return state
		}
		state.Tasks = tasks
	}
	return state
}

// AddTask submits the intake form and, on success, returns the refetched
// open tasks. Validation failures never reach the API.
func (s *TaskService) AddTask(ctx context.Context, caller Caller, form TaskForm) (TabState, error) {
	payload, err := form.Payload()
	if err != nil {
		return TabState{}, err
	}

	release, ok := s.gate.Acquire(inflight.Key(caller.SessionID, ActionAddTask))
	if !ok {
		return TabState{}, apperrors.NewBusy(ActionAddTask)
	}
	defer release()

	if err := s.api.AddTask(ctx, caller.Token, payload); err != nil {
		return TabState{}, err
	}

	s.publisher.Emit(ctx, events.New(events.EventTaskCreated, caller.actor(), events.TaskCreatedPayload{
		TaskID:    payload.TaskID,
		ProjectID: payload.ProjectID,
		Status:    payload.Status,
		Skills:    len(payload.RequiredSkills),
	}))
	return s.LoadTab(ctx, caller, TabOpenTasks), nil
}

// ResolveRequest approves or rejects a pending request and returns the
// refetched request list. Nothing is updated locally ahead of the API.
func (s *TaskService) ResolveRequest(ctx context.Context, caller Caller, taskID, email string, action domain.RequestAction) (TabState, error) {
	if !action.Valid() {
		return TabState{}, apperrors.NewValidationError("Unknown request action", map[string]any{"action": string(action)})
	}
	if strings.TrimSpace(taskID) == "" || strings.TrimSpace(email) == "" {
		return TabState{}, apperrors.NewValidationError("Task and staff member are required", nil)
	}

	release, ok := s.gate.Acquire(inflight.Key(caller.SessionID, ActionResolveRequest))
	if !ok {
		return TabState{}, apperrors.NewBusy(ActionResolveRequest)
	}
	defer release()

	err := s.api.ResolveRequest(ctx, caller.Token, apiclient.RequestDecision{TaskID: taskID, Email: email, Action: action})
	if err != nil {
		return TabState{}, err
	}

	s.publisher.Emit(ctx, events.New(events.EventRequestResolved, caller.actor(), events.RequestResolvedPayload{
		TaskID:     taskID,
		StaffEmail: email,
		Action:     action,
	}))
	return s.LoadTab(ctx, caller, TabStaffRequests), nil
}
