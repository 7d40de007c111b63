package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/inflight"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// ErrSelectStaff is shown when an assignment is confirmed with no one chosen.
const ErrSelectStaff = "Please select a staff member"

// AssignDialog is the assignment dialog for one task. Candidates are
// always fetched when the dialog opens, so nothing carries over.
type AssignDialog struct {
	TaskID     string
	Task       *domain.Task
	Candidates []domain.StaffCandidate
	Selected   string
	Error      string
}

// AssignmentService handles task assignment.
type AssignmentService struct {
	api       ManagerAPI
	tasks     *TaskService
	gate      *inflight.Gate
	publisher events.Publisher
	logger    *zap.Logger
}

// AssignmentDependencies bundles requirements.
type AssignmentDependencies struct {
	API        ManagerAPI
	Tasks      *TaskService
	Gate       *inflight.Gate
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gate := deps.Gate
	if gate == nil {
		gate = inflight.NewGate()
	}
	return &AssignmentService{
		api:       deps.API,
		tasks:     deps.Tasks,
		gate:      gate,
		publisher: newPublisher(deps.Dispatcher, logger),
		logger:    logger,
	}
}

// OpenAssignDialog fetches ranked candidates for taskID. task may be nil
// when the caller does not have it at hand.
func (s *AssignmentService) OpenAssignDialog(ctx context.Context, caller Caller, taskID string, task *domain.Task) AssignDialog {
	dialog := AssignDialog{TaskID: taskID, Task: task}
	candidates, err := s.api.Candidates(ctx, caller.Token, taskID)
	if err != nil {
		dialog.Error = apperrors.UserMessage(err)
		return dialog
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PercentageMatch > candidates[j].PercentageMatch
	})
	dialog.Candidates = candidates
	return dialog
}

// ConfirmAssignment assigns taskID to email and returns the refetched open
// tasks. An empty selection is refused without contacting the API.
func (s *AssignmentService) ConfirmAssignment(ctx context.Context, caller Caller, taskID, email string) (TabState, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return TabState{}, apperrors.NewValidationError(ErrSelectStaff, map[string]any{"field": "email"})
	}
	if strings.TrimSpace(taskID) == "" {
		return TabState{}, apperrors.NewValidationError("Task is required", map[string]any{"field": "taskId"})
	}

	release, ok := s.gate.Acquire(inflight.Key(caller.SessionID, ActionAssignTask))
	if !ok {
		return TabState{}, apperrors.NewBusy(ActionAssignTask)
	}
	defer release()

	if err := s.api.AssignTask(ctx, caller.Token, apiclient.Assignment{TaskID: taskID, Email: email}); err != nil {
		return TabState{}, err
	}

	s.publisher.Emit(ctx, events.New(events.EventTaskAssigned, caller.actor(), events.TaskAssignedPayload{
		TaskID:     taskID,
		StaffEmail: email,
	}))
	return s.tasks.LoadTab(ctx, caller, TabOpenTasks), nil
}
