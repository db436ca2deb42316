package errors

import (
	"fmt"
	"strings"
)

// Aggregate creates an [*Error] bundling one or more independent failures
// into a single reportable error. This is used by composite agents whose
// OnStart or OnClose must attempt every sub-agent and report all failures
// together rather than stopping at the first one.
//
// Aggregate returns nil if causes is empty. The returned error's Cause is
// the first element of causes, so errors.Unwrap/errors.Is/errors.As walk
// into it; the full set is available via [AggregateOf].
//
// Example:
//
//	var failures []error
//	for _, sub := range agents {
//	    if err := sub.OnClose(ctx); err != nil {
//	        failures = append(failures, fmt.Errorf("%s: %w", sub.Name(), err))
//	    }
//	}
//	if agg := errors.Aggregate(failures); agg != nil {
//	    return agg
//	}
func Aggregate(causes []error) *Error {
	return AggregateAttempted(len(causes), causes)
}

// AggregateAttempted is like [Aggregate] but also records how many
// components were attempted in total (attempted >= len(causes)), so the
// resulting message reads "k of n failed" instead of just "k failed".
// This matches the composite-agent contract: every sub-agent's OnStart or
// OnClose is attempted regardless of earlier failures, and the reported
// aggregate records both how many failed and how many were attempted.
func AggregateAttempted(attempted int, causes []error) *Error {
	if len(causes) == 0 {
		return nil
	}

	messages := make([]string, len(causes))
	for i, c := range causes {
		messages[i] = c.Error()
	}

	return &Error{
		Code:    CodeAggregate,
		Message: fmt.Sprintf("%d of %d failed: %s", len(causes), attempted, strings.Join(messages, "; ")),
		Cause:   causes[0],
		Details: map[string]any{
			"causes":    causes,
			"failed":    len(causes),
			"attempted": attempted,
		},
	}
}

// AggregateOf reports the causes bundled into err by [Aggregate], or nil
// and false if err is not an aggregate error (or is nil).
//
// Example:
//
//	if causes, ok := errors.AggregateOf(err); ok {
//	    for _, c := range causes {
//	        log.Printf("component failure: %v", c)
//	    }
//	}
func AggregateOf(err error) ([]error, bool) {
	e, ok := AsError(err)
	if !ok || e.Code != CodeAggregate {
		return nil, false
	}
	causes, ok := e.Details["causes"].([]error)
	if !ok {
		return nil, false
	}
	return causes, true
}

// IsAggregate reports whether err is an aggregate error produced by
// [Aggregate].
func IsAggregate(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == CodeAggregate
}

// Precondition creates a new precondition-failure error (API misuse
// detected synchronously at the call site, e.g. starting an
// already-closed runner).
//
// Example:
//
//	err := errors.Precondition("runner: already started")
func Precondition(message string) *Error {
	return New(CodePrecondition, message)
}

// Preconditionf creates a new precondition-failure error with a
// formatted message.
func Preconditionf(format string, args ...any) *Error {
	return Newf(CodePrecondition, format, args...)
}

// IsPrecondition reports whether err is a precondition-failure error.
func IsPrecondition(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code.Category() == "PRE"
}
