// Package errors is the single error-handling entry point for contractq.
//
// It re-exports github.com/cockroachdb/errors so every package gets stack
// traces, wrapping, hints and safe details from one import:
//
//	if err := lex.LoadExtension(path); err != nil {
//	    return errors.Wrapf(err, "load lexicon extension %s", path)
//	}
//
//	return errors.WithHint(errors.Wrap(ErrInvalidConfig, "cache.ttl"), "use a duration like 5m")
//
// Classification itself never returns an error to callers (failures become
// ERROR-domain results); these helpers are for the infrastructure edges.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing context
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
	GetAllHints        = crdb.GetAllHints
	FlattenHints       = crdb.FlattenHints
	FlattenDetails     = crdb.FlattenDetails
)

// Inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Stack access and assertion failures
var (
	GetReportableStackTrace = crdb.GetReportableStackTrace
	AssertionFailedf        = crdb.AssertionFailedf
)

// Sentinel errors. Compare with errors.Is; wrap to add context.
var (
	// ErrEmptyInput is the cause behind an EMPTY_INPUT result
	ErrEmptyInput = New("query is empty")

	// ErrProcessing is the cause behind a PROCESSING_ERROR result
	ErrProcessing = New("query processing failed")

	// ErrInvalidRequest marks malformed requests at the server edge
	ErrInvalidRequest = New("invalid request")

	// ErrNotFound marks lookups that found nothing
	ErrNotFound = New("not found")

	// ErrRateLimited marks requests rejected by the server rate limiter
	ErrRateLimited = New("rate limited")

	// ErrInvalidConfig marks configuration that failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsNotFoundError reports whether err is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError reports whether err is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewInvalidConfigError creates an invalid-config error naming the offending key
func NewInvalidConfigError(key string, format string, args ...interface{}) error {
	return Wrapf(ErrInvalidConfig, "%s: %s", key, Newf(format, args...).Error())
}
