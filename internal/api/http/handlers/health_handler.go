package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/session"
)

// HealthHandler responds to liveness and readiness checks.
type HealthHandler struct {
	serviceName string
	version     string
	store       session.Store
	storeName   string
}

// NewHealthHandler returns a new handler instance. storeName labels the
// session backend in readiness output.
func NewHealthHandler(serviceName, version string, store session.Store, storeName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store, storeName: storeName}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by pinging the session store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	key := "session_store:" + h.storeName
	if h.store == nil {
		depStatus[key] = "not configured"
		ready = false
	} else if err := h.store.Ping(ctx); err != nil {
		depStatus[key] = err.Error()
		ready = false
	} else {
		depStatus[key] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
