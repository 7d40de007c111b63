package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-portal/internal/api/http/views"
	"github.com/spec-kit/staffing-portal/internal/observability"
	apperrors "github.com/spec-kit/staffing-portal/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, renderer *views.Renderer, appName string, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, renderer, appName))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware turns errors and panics into an HTML error page.
// Health and metrics routes answer JSON instead.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, renderer *views.Renderer, appName string) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
				}
				err = writeError(c, renderer, appName, domainErr)
			}
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := apperrors.CodeInternal
		if fe.Code == fiber.StatusNotFound {
			code = apperrors.CodeNotFound
		}
		return &apperrors.DomainError{Code: code, Message: fe.Message, HTTPStatus: fe.Code}
	}
	return apperrors.ToDomainError(err)
}

func writeError(c *fiber.Ctx, renderer *views.Renderer, appName string, domainErr *apperrors.DomainError) error {
	if wantsJSON(c.Path()) || renderer == nil {
		response := fiber.Map{"error": fiber.Map{
			"code":    domainErr.Code,
			"message": domainErr.Message,
		}}
		if len(domainErr.Details) > 0 {
			response["error"].(fiber.Map)["details"] = domainErr.Details
		}
		return c.Status(domainErr.HTTPStatus).JSON(response)
	}

	message := apperrors.UserMessage(domainErr)
	if domainErr.Code == apperrors.CodeNotFound {
		message = "The page you were looking for does not exist."
	}
	return renderer.Render(c, domainErr.HTTPStatus, views.PageError, views.ErrorPage{
		Layout:  views.Layout{AppName: appName, Title: "Error"},
		Status:  domainErr.HTTPStatus,
		Message: message,
	})
}

func wantsJSON(path string) bool {
	return strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/metrics")
}
