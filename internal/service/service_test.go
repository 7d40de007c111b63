package service_test

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/apiclient"
	"github.com/spec-kit/staffing-portal/internal/apitest"
	"github.com/spec-kit/staffing-portal/internal/events"
	"github.com/spec-kit/staffing-portal/internal/inflight"
	"github.com/spec-kit/staffing-portal/internal/service"
)

type memoryTokenStore struct {
	token string
	id    string
}

func (m *memoryTokenStore) Set(token string) error {
	m.token = token
	m.id = "sid-test"
	return nil
}

func (m *memoryTokenStore) Clear() error {
	m.token = ""
	m.id = ""
	return nil
}

func (m *memoryTokenStore) ID() string { return m.id }

type fixture struct {
	api        *apitest.Server
	client     *apiclient.Client
	gate       *inflight.Gate
	dispatcher events.Dispatcher
	published  []events.Event
	auth       *service.AuthService
	tasks      *service.TaskService
	assign     *service.AssignmentService
	staff      *service.StaffService
	caller     service.Caller
}

func newFixture() *fixture {
	f := &fixture{
		api:        apitest.NewServer(),
		gate:       inflight.NewGate(),
		dispatcher: events.NewInMemoryDispatcher(),
	}
	for _, eventType := range events.AllEventTypes {
		f.dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.client = apiclient.NewClient(f.api.URL, time.Second)
	logger := zap.NewNop()

	f.auth = service.NewAuthService(service.AuthDependencies{API: f.client, Dispatcher: f.dispatcher, Logger: logger})
	f.tasks = service.NewTaskService(service.TaskDependencies{API: f.client, Gate: f.gate, Dispatcher: f.dispatcher, Logger: logger})
	f.assign = service.NewAssignmentService(service.AssignmentDependencies{
		API: f.client, Tasks: f.tasks, Gate: f.gate, Dispatcher: f.dispatcher, Logger: logger,
	})
	f.staff = service.NewStaffService(service.StaffDependencies{API: f.client, Gate: f.gate, Dispatcher: f.dispatcher, Logger: logger})
	f.caller = service.Caller{Token: "tok", SessionID: "sid-1"}
	return f
}

func (f *fixture) close() {
	f.api.Close()
}

func (f *fixture) eventTypes() []events.EventType {
	types := make([]events.EventType, 0, len(f.published))
	for _, e := range f.published {
		types = append(types, e.Type)
	}
	return types
}
