package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	_, malformed := DecodeProjectBatch([]byte("<Projects><Project>"))
	_, badFormat := ParseFormat("csv", FormatXML)
	_, badDate := ParseReferenceDate("yesterday")

	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "malformed batch maps correctly",
			err:         malformed,
			wantCode:    "IMP001",
			wantMessage: "The batch could not be read",
		},
		{
			name:        "wrapped malformed batch still maps",
			err:         fmt.Errorf("import: %w", malformed),
			wantCode:    "IMP001",
			wantMessage: "The batch could not be read",
		},
		{
			name:        "oversized body maps correctly",
			err:         errors.New("http: request body too large"),
			wantCode:    "IMP002",
			wantMessage: "The batch exceeds the maximum size",
		},
		{
			name:        "full import queue maps correctly",
			err:         fmt.Errorf("import: %w", ErrTooManyImports),
			wantCode:    "IMP003",
			wantMessage: "The server is busy with other imports",
		},
		{
			name:        "invalid reference date maps correctly",
			err:         badDate,
			wantCode:    "REQ001",
			wantMessage: "The reference date could not be parsed",
		},
		{
			name:        "unknown format maps correctly",
			err:         badFormat,
			wantCode:    "REQ002",
			wantMessage: "The requested output format is not supported",
		},
		{
			name:        "invalid parameter maps correctly",
			err:         fmt.Errorf("%w: limit %q", ErrInvalidParameter, "ten"),
			wantCode:    "REQ003",
			wantMessage: "A request parameter has an invalid value",
		},
		{
			name:        "foreign key maps correctly",
			err:         errors.New("violates foreign key constraint"),
			wantCode:    "DB003",
			wantMessage: "Referenced record does not exist",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "timeout maps correctly",
			err:         fmt.Errorf("save projects: %w", context.DeadlineExceeded),
			wantCode:    "DB006",
			wantMessage: "Operation timed out",
		},
		{
			name:        "check violation maps to constraint",
			err:         fmt.Errorf("insert tasks: %w", &pgconn.PgError{Code: "23514", Message: "violates check constraint"}),
			wantCode:    "DB008",
			wantMessage: "A value was rejected by the database",
		},
		{
			name:        "foreign key PgError falls through to pattern",
			err:         &pgconn.PgError{Code: "23503", Message: "insert violates foreign key constraint"},
			wantCode:    "DB003",
			wantMessage: "Referenced record does not exist",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DEADLOCK detected"),
			wantCode:    "DB007",
			wantMessage: "Database was busy with conflicting operations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	result := FormatUserError(err)

	expected := "Unable to connect to database (Code: DB004). Please try again in a few moments"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  ErrMalformedBatch,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
