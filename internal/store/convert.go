package store

// convert.go maps domain values to and from pgtype values.
//
// Nullable columns round-trip through pgtype with Valid=false standing for
// NULL. Columns read through a LEFT JOIN are always scanned as pgtype values.

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// toPgDate converts a calendar date to pgtype.Date.
func toPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

// toPgDatePtr converts an optional date. nil becomes NULL.
func toPgDatePtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{Valid: false}
	}
	return toPgDate(*t)
}

// fromPgDatePtr converts a nullable date back to an optional time.
func fromPgDatePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// toPgUUID converts a batch identifier to pgtype.UUID.
func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
