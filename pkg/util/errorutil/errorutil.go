package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the portal.
const (
	CodeValidation     = "VALIDATION_FAILED"
	CodeTransport      = "TRANSPORT_FAILED"
	CodeRemoteRejected = "REMOTE_REJECTED"
	CodeSessionInvalid = "SESSION_INVALID"
	CodeBusy           = "SUBMISSION_IN_FLIGHT"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// TransportMessage is what a person sees when the remote API could not be reached.
const TransportMessage = "Unable to reach the server. Please try again."

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports input rejected before any network call.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewTransportError wraps a failure to exchange a request with the remote API.
func NewTransportError(endpoint string, err error) error {
	return &DomainError{
		Code:       CodeTransport,
		Message:    TransportMessage,
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"endpoint": endpoint},
		Err:        err,
	}
}

// NewRemoteRejected carries a non-2xx answer from the remote API. The message
// is shown to the user verbatim.
func NewRemoteRejected(endpoint string, status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	return &DomainError{
		Code:       CodeRemoteRejected,
		Message:    message,
		HTTPStatus: status,
		Details:    map[string]any{"endpoint": endpoint},
	}
}

// NewSessionInvalid marks a missing, expired or undecodable session token.
func NewSessionInvalid(reason string) error {
	return NewDomainError(CodeSessionInvalid, reason, http.StatusUnauthorized, nil)
}

// NewBusy reports an action that is already being submitted for this session.
func NewBusy(action string) error {
	return NewDomainError(CodeBusy, "A submission is already in progress. Please wait.", http.StatusConflict,
		map[string]any{"action": action})
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// UserMessage returns the text a person should see for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	de := ToDomainError(err)
	switch de.Code {
	case CodeInternal:
		return "Something went wrong. Please try again."
	default:
		return de.Message
	}
}
