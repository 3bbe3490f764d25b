// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import (
	log "github.com/sirupsen/logrus"
)

// Severity is a bitmask of diagnostic message severities.
type Severity uint32

// Diagnostic severities, lowest to highest.
const (
	SeverityVerbose Severity = 1 << iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// MessageType is a bitmask of diagnostic message categories.
type MessageType uint32

// Diagnostic message categories.
const (
	MessageGeneral MessageType = 1 << iota
	MessageValidation
	MessagePerformance
)

// MessageFunc receives one diagnostic message. The driver may invoke it
// from an internal thread without notice, so implementations must be safe
// to call concurrently, must not touch bootstrap state, and must return
// promptly.
type MessageFunc func(severity Severity, messageType MessageType, message string)

// DebugConfig selects which diagnostics are delivered and where.
type DebugConfig struct {
	Severities Severity
	Types      MessageType
	Callback   MessageFunc
}

// DefaultDebugConfig subscribes to every severity and category and routes
// messages into the process logger. The logrus standard logger
// serializes writes internally, which makes it a safe sink for callbacks
// arriving on driver threads.
func DefaultDebugConfig() DebugConfig {
	return DebugConfig{
		Severities: SeverityVerbose | SeverityInfo | SeverityWarning | SeverityError,
		Types:      MessageGeneral | MessageValidation | MessagePerformance,
		Callback:   LogDiagnostic,
	}
}

// LogDiagnostic maps driver severities onto log levels. Every message is
// advisory: driver-reported errors are logged at error level but never
// escalated to a failure. Aborting on error-severity messages is a possible
// future policy, not current behavior.
func LogDiagnostic(severity Severity, messageType MessageType, message string) {
	entry := log.WithField("type", messageTypeString(messageType))
	switch {
	case severity&SeverityError != 0:
		entry.Error(message)
	case severity&SeverityWarning != 0:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

func messageTypeString(t MessageType) string {
	switch {
	case t&MessageValidation != 0:
		return "validation"
	case t&MessagePerformance != 0:
		return "performance"
	default:
		return "general"
	}
}
