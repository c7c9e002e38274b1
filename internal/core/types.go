package core

import (
	"regexp"
	"strconv"
	"time"
)

// ExecutionType is the workflow stage of a task.
type ExecutionType int

const (
	ProductBacklog ExecutionType = iota
	SprintBacklog
	InProgress
	Finished
)

var executionTypeNames = [...]string{"ProductBacklog", "SprintBacklog", "InProgress", "Finished"}

// Valid reports whether e is a member of the execution type domain.
func (e ExecutionType) Valid() bool {
	return e >= 0 && int(e) < len(executionTypeNames)
}

func (e ExecutionType) String() string {
	if !e.Valid() {
		return "ExecutionType(" + strconv.Itoa(int(e)) + ")"
	}
	return executionTypeNames[e]
}

// LabelType is the subject label attached to a task.
type LabelType int

const (
	Priority LabelType = iota
	CSharpAdvanced
	JavaAdvanced
	EntityFramework
	Hibernate
)

var labelTypeNames = [...]string{"Priority", "CSharpAdvanced", "JavaAdvanced", "EntityFramework", "Hibernate"}

// Valid reports whether l is a member of the label type domain.
func (l LabelType) Valid() bool {
	return l >= 0 && int(l) < len(labelTypeNames)
}

func (l LabelType) String() string {
	if !l.Valid() {
		return "LabelType(" + strconv.Itoa(int(l)) + ")"
	}
	return labelTypeNames[l]
}

// ExecutionTypeCodes returns the numeric codes accepted on import.
func ExecutionTypeCodes() []string {
	return enumCodes(len(executionTypeNames))
}

// LabelTypeCodes returns the numeric codes accepted on import.
func LabelTypeCodes() []string {
	return enumCodes(len(labelTypeNames))
}

func enumCodes(n int) []string {
	codes := make([]string, n)
	for i := range codes {
		codes[i] = strconv.Itoa(i)
	}
	return codes
}

// Project is an imported project. It owns its tasks.
type Project struct {
	ID       int64
	Name     string
	OpenDate time.Time
	DueDate  *time.Time // nil when the project has no end date
	Tasks    []Task
}

// Task belongs to exactly one project.
type Task struct {
	ID            int64
	ProjectID     int64
	Name          string
	OpenDate      time.Time
	DueDate       time.Time
	ExecutionType ExecutionType
	LabelType     LabelType
}

// Employee is an imported employee with links to existing tasks.
type Employee struct {
	ID       int64
	Username string
	Email    string
	Phone    string
	Tasks    []EmployeeTask
}

// EmployeeTask links an employee to a task by id.
// Task is only populated when read back from a store for reporting.
type EmployeeTask struct {
	EmployeeID int64
	TaskID     int64
	Task       *Task
}

// FieldType represents the expected shape of a candidate field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldEmail
)

// FieldSpec defines validation rules for a single candidate field.
type FieldSpec struct {
	Name       string         // Field name as it appears in the batch
	Type       FieldType      // Expected shape
	Required   bool           // Value must be non-empty
	MinLen     int            // Minimum length in characters (0 = no bound)
	MaxLen     int            // Maximum length in characters (0 = no bound)
	Pattern    *regexp.Regexp // Optional shape the whole value must match
	EnumValues []string       // Valid values for FieldEnum
}

// Record is a candidate's raw field values keyed by FieldSpec.Name.
type Record map[string]string

// Rule is a named cross-field predicate over a Record.
type Rule struct {
	Name  string
	Check func(Record) bool
}

// Schema is the ordered constraint set for one entity type.
type Schema struct {
	Fields []FieldSpec
	Rules  []Rule
}
