package core

// convert.go holds the date conversions shared by the importers and reports.
//
// Input dates use a single fixed day/month/year layout across both importers.
// Report dates use the short month/day/year form, independent of the input layout.

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted layout for imported dates (e.g. 21/05/2019).
const DateLayout = "02/01/2006"

// ShortDateLayout renders dates in report output (e.g. 05/21/2019).
const ShortDateLayout = "01/02/2006"

// ReferenceDateLayout is the layout of the busiest-employees reference date
// accepted by the HTTP and CLI surfaces.
const ReferenceDateLayout = "2006-01-02"

// ParseDate parses s with DateLayout. Surrounding whitespace is not accepted.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatShortDate renders t in ShortDateLayout.
func FormatShortDate(t time.Time) string {
	return t.Format(ShortDateLayout)
}

// ParseReferenceDate parses a report reference date. Both ReferenceDateLayout
// and DateLayout are accepted.
func ParseReferenceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ReferenceDateLayout, s); err == nil {
		return t, nil
	}
	if t, ok := ParseDate(s); ok {
		return t, nil
	}
	return time.Time{}, &DateError{Input: s}
}

// DateError reports a reference date that matches no accepted layout.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q (use YYYY-MM-DD or DD/MM/YYYY)", e.Input)
}

// onOrAfter reports whether a is the same instant as b or later.
func onOrAfter(a, b time.Time) bool {
	return !a.Before(b)
}
