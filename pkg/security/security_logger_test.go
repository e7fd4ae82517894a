package security

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@x.com", MaskEmail("jo@x.com"))
	assert.Equal(t, "***@x.com", MaskEmail("j@x.com"))
	assert.Equal(t, "***", MaskEmail("j@"))
	assert.Len(t, MaskEmail("not-an-email"), 16)
}

func TestSecurityLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "taxpro-backend", "test")

	sl.LogDeliveryFailed(context.Background(), "jo@x.com", "owner_notification", "req-1", errors.New("boom"))
	sl.LogInquiryDelivered(context.Background(), "jo@x.com", "Tax Consultation", "req-2")
	sl.LogValidationFailed(context.Background(), "10.0.0.1", "req-3", []string{"email"})

	entries := logs.All()
	require.Len(t, entries, 3)

	failed := entries[0]
	assert.Equal(t, zapcore.ErrorLevel, failed.Level)
	assert.Equal(t, string(EventInquiryDeliveryFailed), failed.Message)
	ctx := failed.ContextMap()
	assert.Equal(t, "j***@x.com", ctx["email"])
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, "taxpro-backend", ctx["service"])
	details, ok := ctx["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "owner_notification", details["step"])
	assert.Equal(t, "boom", details["error"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "10.0.0.1", entries[2].ContextMap()["ip"])
}
