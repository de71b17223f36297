package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of an access event
// This is derived from EventType, NOT caller-provided
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventAccessGrantedIP:  SeverityINFO,
	EventContactSubmitted: SeverityINFO,
	EventAccessGrantedKey: SeverityMEDIUM,
	EventAccessDenied:     SeverityWARN,
	EventGateFailure:      SeverityHIGH,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// level maps a severity onto the zap level it is written at.
func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityWARN:
		return zapcore.WarnLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// anonymousEvents come from public visitors; their IP is logged hashed.
var anonymousEvents = map[EventType]bool{
	EventContactSubmitted: true,
}
