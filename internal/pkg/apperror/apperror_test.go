package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodePermissionDenied, "You do not have permission to perform this action."},
		{CodeNotFound, "The requested data was not found."},
		{CodeUnavailable, "Service is temporarily unavailable. Please try again later."},
		{CodeUnauthenticated, "Please log in to continue."},
		{CodeFailedPrecondition, "Operation failed due to invalid conditions."},
		{CodeResourceExhausted, "Too many requests. Please wait a moment and try again."},
		{CodeCancelled, "Operation was cancelled."},
		{CodeDataLoss, "Data corruption detected. Please refresh and try again."},
		{Code("weird"), DefaultMessage},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.code))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "The requested data was not found.", Message(NotFound("")))
	assert.Equal(t, "Exam not found", Message(NotFound("Exam not found")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, DefaultMessage, Message(errors.New("")))
	assert.Equal(t, DefaultMessage, Message(nil))

	wrapped := fmt.Errorf("loading: %w", Unauthenticated(""))
	assert.Equal(t, "Please log in to continue.", Message(wrapped))
}

func TestIsAndStatus(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Conflict("busy"))

	assert.True(t, errors.Is(err, Conflict("")))
	assert.False(t, errors.Is(err, NotFound("")))

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("nope"))

	cause := errors.New("dial tcp")
	assert.ErrorIs(t, Unavailable(cause), cause)
}
