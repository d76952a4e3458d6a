package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesWrappedType(t *testing.T) {
	base := NewNotEnrolledError(3, 7)
	wrapped := fmt.Errorf("submit: %w", base)

	assert.True(t, Is(wrapped, ErrorTypeNotEnrolled))
	assert.False(t, Is(wrapped, ErrorTypeValidation))
	assert.False(t, Is(errors.New("plain"), ErrorTypeNotEnrolled))
	assert.False(t, Is(nil, ErrorTypeNotEnrolled))
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSubmissionFailedError(cause)

	assert.Equal(t, "SUBMISSION_FAILED: feedback submission rolled back: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "emoji is required", Message(NewValidationError("emoji is required"), "oops"))
	assert.Equal(t, "oops", Message(errors.New("boom"), "oops"))
}
