package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrNotFound,
		ErrRateLimited,
		ErrTimeout,
		ErrNoResults,
		ErrNetwork,
		ErrUnreadable,
		ErrUnwritable,
		ErrEmptyInput,
		ErrMalformedInput,
		ErrConfig,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	err := New(ErrNotFound, "Server not found", "Check the join code")

	require.NotNil(t, err)
	assert.Equal(t, ErrNotFound, err.Code)
	assert.Equal(t, "Server not found", err.Message)
	assert.Equal(t, "Check the join code", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		missing  []string
	}{
		{
			name:     "message only",
			err:      New(ErrTimeout, "Search timed out", ""),
			contains: []string{"✗ Search timed out"},
		},
		{
			name:     "with suggestion",
			err:      New(ErrRateLimited, "Too many requests", "Wait a moment and try again"),
			contains: []string{"✗ Too many requests", "Wait a moment and try again"},
		},
		{
			name:     "with cause",
			err:      WrapWithCode(fmt.Errorf("dial tcp: refused"), ErrNetwork, "Couldn't reach directory", ""),
			contains: []string{"✗ Couldn't reach directory", "dial tcp: refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.err.Error()
			assert.True(t, strings.HasPrefix(out, "✗ "))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestWrap_DefaultsToNetwork(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "request failed")

	assert.Equal(t, ErrNetwork, err.Code)
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrNoResults, "Nothing found", "")
	wrapped := fmt.Errorf("search: %w", err)

	assert.True(t, IsCode(err, ErrNoResults))
	assert.True(t, IsCode(wrapped, ErrNoResults))
	assert.False(t, IsCode(err, ErrTimeout))
	assert.False(t, IsCode(nil, ErrTimeout))
	assert.False(t, IsCode(errors.New("plain"), ErrTimeout))
}

func TestIsFetch(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{ErrNotFound, true},
		{ErrRateLimited, true},
		{ErrTimeout, true},
		{ErrNoResults, true},
		{ErrNetwork, true},
		{ErrUnreadable, false},
		{ErrEmptyInput, false},
		{ErrConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFetch(New(tt.code, "x", "")))
		})
	}
	assert.False(t, IsFetch(nil))
}

func TestIsInput(t *testing.T) {
	assert.True(t, IsInput(New(ErrEmptyInput, "empty", "")))
	assert.True(t, IsInput(New(ErrMalformedInput, "bad", "")))
	assert.False(t, IsInput(New(ErrNotFound, "missing", "")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Server not found", UserMessage(New(ErrNotFound, "Server not found", "hint")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}
