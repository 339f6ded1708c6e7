package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"userId", 7, "password", "hunter2", "Authorization", "Bearer x", "dangling"})

	assert.Equal(t, []interface{}{"userId", 7, "password", "[REDACTED]", "Authorization", "[REDACTED]", "dangling"}, out)
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := Nop().With("component", "test")
	assert.NotPanics(t, func() {
		l.Info("hello", "k", "v")
		l.Warn("odd", "only-key")
	})
}
