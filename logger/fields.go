package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging.
const (
	// Identity
	FieldRequestID = "request_id"
	FieldEntryID   = "entry_id"
	FieldDraftID   = "draft_id"

	// Components
	FieldComponent = "component"

	// HTTP
	FieldMethod = "method"
	FieldPath   = "path"
	FieldStatus = "status"
	FieldRemote = "remote"
	FieldPort   = "port"

	// Classification
	FieldQuery      = "query"
	FieldCorrected  = "corrected"
	FieldDomain     = "domain"
	FieldIntent     = "intent"
	FieldAction     = "action"
	FieldConfidence = "confidence"
	FieldCacheHit   = "cache_hit"
	FieldClauses    = "clauses"

	// Timing and sizes
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"
	FieldBatchSize  = "batch_size"

	// Errors and files
	FieldError = "error"
	FieldFile  = "file"
)

type contextKey string

const (
	requestIDKey contextKey = "logger_request_id"
	componentKey contextKey = "logger_component"
)

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request ID stored by WithRequestID, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context as key-value pairs
// suitable for Infow/Errorw.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}
	return fields
}

// FromContext returns base (or the global logger when base is nil) enriched
// with the fields carried by ctx.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection:
//
//	c := nlq.New(nlq.WithLogger(logger.ComponentLogger("nlq")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
