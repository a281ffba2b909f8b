package logging

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")

	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, adapter.logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, adapter.logger.Formatter)
}

func TestNewLogrusAdapterInvalidLevel(t *testing.T) {
	logger := NewLogrusAdapter("not-a-level", "text")

	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.Equal(t, logrus.InfoLevel, adapter.logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, adapter.logger.Formatter)
}

func TestMockLoggerCapturesEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("hello", F("key", "value"))
	mock.Warn("careful")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "INFO", mock.Entries[0].Level)
	assert.Equal(t, "hello", mock.Entries[0].Message)
	require.Len(t, mock.Entries[0].Fields, 1)
	assert.Equal(t, "key", mock.Entries[0].Fields[0].Key)
	assert.Equal(t, "WARN", mock.Entries[1].Level)
}

func TestMockLoggerWithError(t *testing.T) {
	mock := NewMockLogger()
	cause := errors.New("boom")

	mock.WithError(cause).Error("failed")

	// WithError returns a derived logger writing into its own entry list.
	derived := mock.WithError(cause).(*MockLogger)
	derived.Error("failed again")
	require.Len(t, derived.Entries, 1)
	assert.Equal(t, cause, derived.Entries[0].Error)
}

func TestFShorthand(t *testing.T) {
	field := F("count", 3)
	assert.Equal(t, "count", field.Key)
	assert.Equal(t, 3, field.Value)
}
