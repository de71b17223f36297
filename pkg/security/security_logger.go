package security

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of admin access event
type EventType string

const (
	EventAccessGrantedIP  EventType = "admin_access_granted_ip"
	EventAccessGrantedKey EventType = "admin_access_granted_key"
	EventAccessDenied     EventType = "admin_access_denied"
	EventContactSubmitted EventType = "contact_submitted"
	EventGateFailure      EventType = "admin_gate_failure"
)

// AccessEvent is one gate decision or public submission worth keeping.
type AccessEvent struct {
	Timestamp time.Time
	Event     EventType
	IP        string
	Path      string
	Reason    string
	UserAgent string
	RequestID string
	Subject   string // already masked
}

// AccessLogger writes access events as structured zap entries.
type AccessLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewAccessLogger builds a production zap logger writing JSON to stdout.
func NewAccessLogger(serviceName string) *AccessLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewAccessLoggerWith(logger, serviceName)
}

// NewAccessLoggerWith wraps an existing zap logger.
func NewAccessLoggerWith(logger *zap.Logger, serviceName string) *AccessLogger {
	return &AccessLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: getEnvironment(),
	}
}

// Log writes an access event at the level its severity maps to.
func (l *AccessLogger) Log(event AccessEvent) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	severity := GetSeverity(event.Event)
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("event_time", event.Timestamp),
	}
	if anonymousEvents[event.Event] {
		fields = append(fields, zap.String("ip_hash", HashValue(event.IP)))
	} else {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}

	l.zapLogger.Log(severity.level(), string(event.Event), fields...)
}

// Sync flushes any buffered log entries
func (l *AccessLogger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
