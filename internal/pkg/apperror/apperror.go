package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodePermissionDenied   Code = "permission-denied"
	CodeNotFound           Code = "not-found"
	CodeUnavailable        Code = "unavailable"
	CodeUnauthenticated    Code = "unauthenticated"
	CodeFailedPrecondition Code = "failed-precondition"
	CodeResourceExhausted  Code = "resource-exhausted"
	CodeCancelled          Code = "cancelled"
	CodeDataLoss           Code = "data-loss"
	CodeInvalidArgument    Code = "invalid-argument"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal"
)

const DefaultMessage = "An unexpected error occurred. Please try again."

var userMessages = map[Code]string{
	CodePermissionDenied:   "You do not have permission to perform this action.",
	CodeNotFound:           "The requested data was not found.",
	CodeUnavailable:        "Service is temporarily unavailable. Please try again later.",
	CodeUnauthenticated:    "Please log in to continue.",
	CodeFailedPrecondition: "Operation failed due to invalid conditions.",
	CodeResourceExhausted:  "Too many requests. Please wait a moment and try again.",
	CodeCancelled:          "Operation was cancelled.",
	CodeDataLoss:           "Data corruption detected. Please refresh and try again.",
}

var httpStatuses = map[Code]int{
	CodePermissionDenied:   http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeUnavailable:        http.StatusServiceUnavailable,
	CodeUnauthenticated:    http.StatusUnauthorized,
	CodeFailedPrecondition: http.StatusPreconditionFailed,
	CodeResourceExhausted:  http.StatusTooManyRequests,
	CodeCancelled:          499,
	CodeDataLoss:           http.StatusInternalServerError,
	CodeInvalidArgument:    http.StatusBadRequest,
	CodeConflict:           http.StatusConflict,
	CodeInternal:           http.StatusInternalServerError,
}

// Error is the only error type handlers translate into a response.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code so errors.Is(err, apperror.NotFound("")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

func New(code Code, message string, err error) *Error {
	if message == "" {
		message = UserMessage(code)
	}
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message, nil)
}

func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message, nil)
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message, nil)
}

func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message, nil)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message, nil)
}

func InvalidArgument(message string, fields map[string]string) *Error {
	e := New(CodeInvalidArgument, message, nil)
	e.Fields = fields
	return e
}

func Unavailable(err error) *Error {
	return New(CodeUnavailable, "", err)
}

func Internal(err error) *Error {
	return New(CodeInternal, DefaultMessage, err)
}

// UserMessage is the canned text for a code. Unknown codes get the default.
func UserMessage(code Code) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return DefaultMessage
}

func HTTPStatus(code Code) int {
	if status, ok := httpStatuses[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Message picks what the user should read for any error: the canned text for
// known codes, the error's own message otherwise, the default as last resort.
func Message(err error) string {
	if err == nil {
		return DefaultMessage
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		return UserMessage(appErr.Code)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultMessage
}
