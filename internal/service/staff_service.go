package service

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/domain"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/inflight"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// StaffDashboard is everything the staff dashboard shows. Each collection
// carries its own error; availability failures are only logged.
type StaffDashboard struct {
	Tasks         []domain.StaffTask
	TasksError    string
	Availability  domain.Availability
	ApprovedTasks []domain.ApprovedTask
	ApprovedError string
}

// StaffService drives the staff dashboard.
type StaffService struct {
	api       StaffAPI
	gate      *inflight.Gate
	publisher events.Publisher
	logger    *zap.Logger
}

// StaffDependencies bundles requirements for the staff service.
type StaffDependencies struct {
	API        StaffAPI
	Gate       *inflight.Gate
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewStaffService creates the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gate := deps.Gate
	if gate == nil {
		gate = inflight.NewGate()
	}
	return &StaffService{api: deps.API, gate: gate, publisher: newPublisher(deps.Dispatcher, logger), logger: logger}
}

// Load runs the three dashboard fetches concurrently. None cancels another.
func (s *StaffService) Load(ctx context.Context, caller Caller) StaffDashboard {
	var (
		dash StaffDashboard
		wg   conc.WaitGroup
	)

	wg.Go(func() {
		tasks, err := s.api.StaffTasks(ctx, caller.Token)
		if err != nil {
			dash.TasksError = apperrors.UserMessage(err)
			return
		}
		dash.Tasks = tasks
	})
	wg.Go(func() {
		details, err := s.api.UserDetails(ctx, caller.Token)
		if err != nil {
			s.logger.Warn("failed to load user details", zap.Error(err))
			return
		}
		if details.Availability != nil {
			dash.Availability = *details.Availability
		}
	})
	wg.Go(func() {
		approved, err := s.api.ApprovedTasks(ctx, caller.Token)
		if err != nil {
			dash.ApprovedError = apperrors.UserMessage(err)
			return
		}
		dash.ApprovedTasks = approved
	})

	wg.Wait()
	return dash
}

// UpdateAvailability stores a new availability window and returns the
// refetched dashboard.
func (s *StaffService) UpdateAvailability(ctx context.Context, caller Caller, availability domain.Availability) (StaffDashboard, error) {
	availability.StartDate = strings.TrimSpace(availability.StartDate)
	availability.EndDate = strings.TrimSpace(availability.EndDate)
	if !availability.IsSet() {
		return StaffDashboard{}, apperrors.NewValidationError("Start date and end date are required", nil)
	}

	release, ok := s.gate.Acquire(inflight.Key(caller.SessionID, ActionUpdateAvail))
	if !ok {
		return StaffDashboard{}, apperrors.NewBusy(ActionUpdateAvail)
	}
	defer release()

	if err := s.api.UpdateAvailability(ctx, caller.Token, availability); err != nil {
		return StaffDashboard{}, err
	}

	s.publisher.Emit(ctx, events.New(events.EventAvailabilityUpdated, caller.actor(), events.AvailabilityUpdatedPayload{
		StartDate: availability.StartDate,
		EndDate:   availability.EndDate,
	}))
	return s.Load(ctx, caller), nil
}

// ErrTaskNotRequestable is shown when a task offers no request control.
const ErrTaskNotRequestable = "This task cannot be requested"

// RequestTask asks for taskID and returns the refetched dashboard so the
// request state shows the API's view. Only a task the dashboard would offer a
// request control for is sent.
func (s *StaffService) RequestTask(ctx context.Context, caller Caller, taskID string) (StaffDashboard, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return StaffDashboard{}, apperrors.NewValidationError("Task is required", map[string]any{"field": "taskId"})
	}

	release, ok := s.gate.Acquire(inflight.Key(caller.SessionID, ActionRequestTask))
	if !ok {
		return StaffDashboard{}, apperrors.NewBusy(ActionRequestTask)
	}
	defer release()

	if err := s.ensureRequestable(ctx, caller, taskID); err != nil {
		return StaffDashboard{}, err
	}
	if err := s.api.RequestTask(ctx, caller.Token, taskID); err != nil {
		return StaffDashboard{}, err
	}

	s.publisher.Emit(ctx, events.New(events.EventTaskRequested, caller.actor(), events.TaskRequestedPayload{TaskID: taskID}))
	return s.Load(ctx, caller), nil
}

func (s *StaffService) ensureRequestable(ctx context.Context, caller Caller, taskID string) error {
	tasks, err := s.api.StaffTasks(ctx, caller.Token)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if task.TaskID != taskID {
			continue
		}
		if state := task.RequestState(); state != domain.RequestStateRequestable {
			return apperrors.NewValidationError(ErrTaskNotRequestable, map[string]any{"taskId": taskID, "state": string(state)})
		}
		return nil
	}
	return apperrors.NewValidationError(ErrTaskNotRequestable, map[string]any{"taskId": taskID})
}
