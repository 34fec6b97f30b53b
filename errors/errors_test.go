package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		notFound        bool
		invalidRequest  bool
		invalidConfig   bool
		wantMsgContains string
	}{
		{
			name:            "invalid request",
			err:             NewInvalidRequestError("field %s failed %s", "Query", "required"),
			invalidRequest:  true,
			wantMsgContains: "field Query failed required",
		},
		{
			name:            "invalid config names the key",
			err:             NewInvalidConfigError("cache.ttl", "must be > 0, got %s", "0s"),
			invalidConfig:   true,
			wantMsgContains: "cache.ttl: must be > 0, got 0s",
		},
		{
			name:            "wrapped not found",
			err:             Wrap(ErrNotFound, "journal is disabled"),
			notFound:        true,
			wantMsgContains: "journal is disabled: not found",
		},
		{
			name:            "std wrapped not found",
			err:             fmt.Errorf("history: %w", ErrNotFound),
			notFound:        true,
			wantMsgContains: "history: not found",
		},
		{
			name:            "unrelated",
			err:             New("disk full"),
			wantMsgContains: "disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.invalidRequest, IsInvalidRequestError(tt.err))
			assert.Equal(t, tt.invalidConfig, Is(tt.err, ErrInvalidConfig))
			assert.Contains(t, tt.err.Error(), tt.wantMsgContains)
		})
	}
}

func TestNilIsNeverASentinel(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidRequestError(nil))
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(NewInvalidConfigError("server.port", "out of range: %d", 70000), "omit server.port for the default 8787")
	err = Wrap(err, "load configuration")

	assert.Equal(t, "omit server.port for the default 8787", FlattenHints(err))
	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Equal(t, "load configuration: server.port: out of range: 70000: invalid configuration", err.Error())
}

func TestWithHintf(t *testing.T) {
	err := WithHintf(New("batch too large"), "send at most %d queries per batch", 100)
	require.Len(t, GetAllHints(err), 1)
	assert.Equal(t, "send at most 100 queries per batch", GetAllHints(err)[0])
}

func TestProcessingCauseKeepsPanicValue(t *testing.T) {
	err := Wrapf(ErrProcessing, "%v", "index out of range")

	assert.True(t, Is(err, ErrProcessing))
	assert.False(t, Is(err, ErrEmptyInput))
	assert.Equal(t, "index out of range: query processing failed", err.Error())
}

type parseError struct{ column int }

func (e *parseError) Error() string { return fmt.Sprintf("parse error at column %d", e.column) }

func TestAsThroughWrap(t *testing.T) {
	err := Wrapf(&parseError{column: 7}, "decode lexicon extension %s", "lex.toml")

	var pe *parseError
	require.True(t, As(err, &pe))
	assert.Equal(t, 7, pe.column)
	assert.Equal(t, &parseError{column: 7}, UnwrapAll(err))
}

func TestStackTraceIsCaptured(t *testing.T) {
	err := Wrap(New("root"), "context")
	assert.NotNil(t, GetReportableStackTrace(err))
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}
