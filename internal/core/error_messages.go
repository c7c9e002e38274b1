// Package core provides the import and report pipeline.
//
// # Error Codes Reference
//
// This file defines user-facing messages for batch-level failures: the only
// errors that abort an import or export call. Rejected records are never
// mapped here. They produce the generic "Invalid data!" line in the import
// log and nothing else.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Malformed batch: The batch could not be decoded into records
//	         Action: Check the document against the project (XML) or employee (JSON) schema
//	         Match: errors.Is(err, ErrMalformedBatch)
//
//	IMP002 - Batch too large: The request body exceeds IMPORT_MAX_BATCH_SIZE
//	         Action: Split the batch into smaller documents
//	         Patterns: "request body too large"
//
//	IMP003 - Import queue full: Every import slot stayed busy for IMPORT_QUEUE_WAIT
//	         Action: Retry the import shortly
//	         Match: errors.Is(err, ErrTooManyImports)
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid date: The reference date could not be parsed
//	         Action: Use YYYY-MM-DD or DD/MM/YYYY
//	         Match: *DateError
//
//	REQ002 - Unknown format: The requested output format is not supported
//	         Action: Use xml, json or yaml
//	         Match: errors.Is(err, ErrUnknownFormat)
//
//	REQ003 - Invalid parameter: A query parameter or flag has a bad value
//	         Action: Check the parameter named in the error
//	         Match: errors.Is(err, ErrInvalidParameter)
//
// # Database Errors (DB001-DB099)
//
//	DB003 - Foreign key: Referenced record does not exist
//	DB004 - Connection refused: Unable to connect to database
//	DB005 - Connection reset: Database connection was interrupted
//	DB006 - Timeout: Operation timed out
//	DB007 - Deadlock: Database was busy with conflicting operations
//	DB008 - Constraint: A value was rejected by the database
//	        Match: *pgconn.PgError with class 23 (integrity constraint violation)
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Typed errors are matched first with errors.Is / errors.As. Remaining errors
// are matched case-insensitively with strings.Contains; the first matching
// pattern wins, so more specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrMalformedBatch is returned when batch text cannot be decoded into candidates.
	ErrMalformedBatch = errors.New("malformed batch")

	// ErrUnknownFormat is returned for an unsupported report format.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidParameter is returned for a malformed request parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	malformedBatchMessage = UserMessage{
		Message: "The batch could not be read",
		Action:  "Check the document against the project (XML) or employee (JSON) schema",
		Code:    "IMP001",
	}
	invalidDateMessage = UserMessage{
		Message: "The reference date could not be parsed",
		Action:  "Use YYYY-MM-DD or DD/MM/YYYY",
		Code:    "REQ001",
	}
	unknownFormatMessage = UserMessage{
		Message: "The requested output format is not supported",
		Action:  "Use xml, json or yaml",
		Code:    "REQ002",
	}
	tooManyImportsMessage = UserMessage{
		Message: "The server is busy with other imports",
		Action:  "Retry the import shortly",
		Code:    "IMP003",
	}
	invalidParameterMessage = UserMessage{
		Message: "A request parameter has an invalid value",
		Action:  "Check the parameter named in the error",
		Code:    "REQ003",
	}
	constraintMessage = UserMessage{
		Message: "A value was rejected by the database",
		Action:  "Check the batch for values outside the stored column limits",
		Code:    "DB008",
	}
)

// errorPatterns maps technical error text (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Import Errors
	// =========================================================================
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The batch exceeds the maximum size",
			Action:  "Split the batch into smaller documents",
			Code:    "IMP002",
		},
	},

	// =========================================================================
	// Database Errors (DB003-DB007)
	// =========================================================================
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Import projects before the employees that reference their tasks",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller batch or raise IMPORT_TIMEOUT",
			Code:    "DB006",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller batch or raise IMPORT_TIMEOUT",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a batch-level error to a user-friendly message.
// If nothing matches, a generic fallback with code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errors.Is(err, ErrMalformedBatch) {
		return malformedBatchMessage
	}
	if errors.Is(err, ErrTooManyImports) {
		return tooManyImportsMessage
	}
	if errors.Is(err, ErrUnknownFormat) {
		return unknownFormatMessage
	}
	if errors.Is(err, ErrInvalidParameter) {
		return invalidParameterMessage
	}
	var dateErr *DateError
	if errors.As(err, &dateErr) {
		return invalidDateMessage
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") && pgErr.Code != "23503" {
		return constraintMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
