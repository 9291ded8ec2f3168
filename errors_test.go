package gptplayers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategories(t *testing.T) {
	t.Run("transient", func(t *testing.T) {
		err := NewTransientError("rate limited", 429, nil)
		assert.Equal(t, ErrorTransient, err.Category())
		assert.True(t, err.Retryable())
		assert.Equal(t, 429, err.StatusCode())
		assert.Zero(t, err.RetryAfter())
	})

	t.Run("transient with retry delay", func(t *testing.T) {
		err := NewTransientErrorWithRetry("rate limited", 429, 30*time.Second, nil)
		assert.True(t, err.Retryable())
		assert.Equal(t, 30*time.Second, err.RetryAfter())
	})

	t.Run("permanent", func(t *testing.T) {
		err := NewPermanentError("invalid api key", 401, nil)
		assert.Equal(t, ErrorPermanent, err.Category())
		assert.False(t, err.Retryable())
	})

	t.Run("user input", func(t *testing.T) {
		err := NewUserInputError("bad request", 400, nil)
		assert.Equal(t, ErrorUserInput, err.Category())
		assert.False(t, err.Retryable())
	})
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientError("request failed", 0, cause)

	assert.Equal(t, "request failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewPermanentError("nope", 0, nil)
	assert.Equal(t, "nope", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestCategoryHelpers(t *testing.T) {
	transient := NewTransientError("rate limited", 429, nil)
	permanent := NewPermanentError("invalid key", 401, nil)
	plain := errors.New("plain")

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(permanent))
	assert.False(t, IsTransient(plain))
	assert.False(t, IsTransient(nil))

	assert.True(t, IsPermanent(permanent))
	assert.False(t, IsPermanent(transient))

	assert.Equal(t, 429, StatusCodeOf(transient))
	assert.Zero(t, StatusCodeOf(plain))

	withDelay := NewTransientErrorWithRetry("rate limited", 429, 5*time.Second, nil)
	assert.Equal(t, 5*time.Second, RetryAfterOf(withDelay))
	assert.Zero(t, RetryAfterOf(plain))
}

func TestCategoryHelpersThroughWrapping(t *testing.T) {
	inner := NewTransientError("rate limited", 429, nil)
	wrapped := fmt.Errorf("during completion: %w", inner)

	require.True(t, IsTransient(wrapped))
	assert.Equal(t, 429, StatusCodeOf(wrapped))
}
