package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"taxpro-backend/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EventType represents the type of audited event
type EventType string

const (
	EventValidationFailed      EventType = "inquiry_validation_failed"
	EventInquiryDelivered      EventType = "inquiry_delivered"
	EventInquiryDeliveryFailed EventType = "inquiry_delivery_failed"
	EventRateLimitTriggered    EventType = "rate_limit_triggered"
)

// SecurityEvent is one audit record. Email is masked before it is written.
type SecurityEvent struct {
	Event     EventType
	Email     string
	IP        string
	UserAgent string
	RequestID string
	Details   map[string]any
}

// SecurityLogger writes structured audit events with Zap
type SecurityLogger struct {
	zapLogger *zap.Logger
}

var defaultLogger *SecurityLogger

// Options configures the audit logger output
type Options struct {
	ServiceName string
	Environment string
	// File enables a rotated log file next to stdout
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// InitSecurityLogger builds the audit logger and makes it the default instance
func InitSecurityLogger(opts Options) *SecurityLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "message"

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opts.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(sinks...),
		zapcore.InfoLevel,
	)

	sl := NewSecurityLogger(zap.New(core, zap.AddCaller()), opts.ServiceName, opts.Environment)
	defaultLogger = sl
	return sl
}

// NewSecurityLogger wraps an existing Zap logger, stamping every record with
// the service name and environment
func NewSecurityLogger(zl *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger: zl.With(zap.String("service", serviceName), zap.String("env", environment)),
	}
}

// DefaultLogger returns the default audit logger instance
func DefaultLogger() *SecurityLogger {
	if defaultLogger == nil {
		return InitSecurityLogger(Options{ServiceName: "taxpro-backend", Environment: getEnvironment()})
	}
	return defaultLogger
}

// levelFor maps events to severity: failed deliveries are errors, rejected
// requests are warnings
func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventInquiryDeliveryFailed:
		return zapcore.ErrorLevel
	case EventValidationFailed, EventRateLimitTriggered:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Log writes an audit event. A missing request ID is taken from ctx.
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.RequestID == "" {
		event.RequestID = domain.StringFromContext(ctx, domain.KeyRequestID)
	}
	fields := []zap.Field{zap.String("event", string(event.Event))}
	for _, f := range []struct{ key, value string }{
		{"email", maskIfSet(event.Email)},
		{"ip", event.IP},
		{"user_agent", event.UserAgent},
		{"request_id", event.RequestID},
	} {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

// LogValidationFailed records which fields of an inquiry were rejected
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, ip, requestID string, fields []string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventValidationFailed,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]any{"fields": fields},
	})
}

// LogInquiryDelivered records a fully delivered inquiry
func (sl *SecurityLogger) LogInquiryDelivered(ctx context.Context, email, service, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventInquiryDelivered,
		Email:     email,
		RequestID: requestID,
		Details:   map[string]any{"service": service},
	})
}

// LogDeliveryFailed records the delivery step that failed
func (sl *SecurityLogger) LogDeliveryFailed(ctx context.Context, email, step, requestID string, err error) {
	details := map[string]any{"step": step}
	if err != nil {
		details["error"] = err.Error()
	}
	sl.Log(ctx, SecurityEvent{
		Event:     EventInquiryDeliveryFailed,
		Email:     email,
		RequestID: requestID,
		Details:   details,
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventRateLimitTriggered,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]any{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "j***@example.com". Values without an @ are hashed.
func MaskEmail(email string) string {
	local, host, ok := strings.Cut(email, "@")
	switch {
	case !ok:
		return HashValue(email)
	case host == "":
		return "***"
	case len(local) <= 1:
		return "***@" + host
	default:
		return local[:1] + "***@" + host
	}
}

func maskIfSet(email string) string {
	if email == "" {
		return ""
	}
	return MaskEmail(email)
}

// HashValue returns a short SHA-256 prefix of value
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
