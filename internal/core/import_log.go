package core

import (
	"fmt"
	"strings"
)

// ErrorMessage is the single failure line written for any rejected record,
// task or task link. Rejections carry no reason on purpose.
const ErrorMessage = "Invalid data!"

const (
	successfullyImportedProject  = "Successfully imported project - %s with %d tasks."
	successfullyImportedEmployee = "Successfully imported employee - %s with %d tasks."
)

// ImportLog accumulates one outcome line per candidate, in input order.
type ImportLog struct {
	lines    []string
	accepted int
	rejected int
}

func (l *ImportLog) fail() {
	l.rejected++
	l.lines = append(l.lines, ErrorMessage)
}

func (l *ImportLog) success(format string, args ...any) {
	l.accepted++
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Accepted returns the number of success lines.
func (l *ImportLog) Accepted() int { return l.accepted }

// Rejected returns the number of failure lines.
func (l *ImportLog) Rejected() int { return l.rejected }

// String joins the lines with newlines, without a trailing newline.
func (l *ImportLog) String() string {
	return strings.Join(l.lines, "\n")
}
