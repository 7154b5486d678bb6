package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_KnownCode(t *testing.T) {
	t.Parallel()
	err := NewError(ErrRateLimitExceeded)

	assert.Equal(t, ErrRateLimitExceeded, err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.NotEmpty(t, err.Message)
	assert.Contains(t, err.Error(), "1007")
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	t.Parallel()
	err := NewError(424242)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewError_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()
	first := NewError(ErrInvalidParams)
	first.Message = "changed"

	assert.NotEqual(t, "changed", NewError(ErrInvalidParams).Message)
}

func TestCustomError_IsMatchesByCode(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("upgrade: %w", NewError(ErrRelayUnavailable))

	assert.True(t, errors.Is(wrapped, NewError(ErrRelayUnavailable)))
	assert.False(t, errors.Is(wrapped, NewError(ErrUnknown)))
}
