// Package errors provides standardized error types and error handling utilities
// for the agentrt runtime. It defines common error categories, error codes,
// and helper functions for creating, wrapping, and inspecting errors.
//
// # Error Categories
//
// The package defines a small set of error categories that map to the
// failure scenarios this runtime actually raises:
//
//   - Validation errors: invalid or missing config/constructor input
//   - Internal errors: unexpected failures, e.g. config loading
//   - Aggregate errors: one or more independent failures bundled into one
//   - Precondition failures: public API misuse detected at the call site
//
// # Error Codes
//
// Each error includes a machine-readable code (e.g., "VAL_001") that can be
// used for error tracking and programmatic handling. Error codes follow the
// pattern: CATEGORY_XXX where CATEGORY is a short identifier and XXX is a
// numeric code.
//
// # Usage
//
// Create a new error with context:
//
//	err := errors.New(errors.CodeValidation, "close timeout must be positive")
//
// Wrap an existing error:
//
//	err := errors.Wrap(err, errors.CodeInternal, "failed to process request")
//
// Check error category:
//
//	if errors.IsValidation(err) {
//	    // handle caller input error
//	}
//
// Extract error details for logging:
//
//	if e, ok := errors.AsError(err); ok {
//	    logger.Error("operation failed",
//	        "code", e.Code,
//	        "message", e.Message,
//	    )
//	}
package errors
