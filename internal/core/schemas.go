package core

import (
	"regexp"
	"time"
)

// Record keys shared by the schemas and the candidate types.
const (
	fieldName          = "Name"
	fieldOpenDate      = "OpenDate"
	fieldDueDate       = "DueDate"
	fieldExecutionType = "ExecutionType"
	fieldLabelType     = "LabelType"
	fieldUsername      = "Username"
	fieldEmail         = "Email"
	fieldPhone         = "Phone"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	phonePattern    = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// EmployeeSchema validates an employee's own fields.
var EmployeeSchema = Schema{
	Fields: []FieldSpec{
		{Name: fieldUsername, Type: FieldText, Required: true, MinLen: 3, MaxLen: 40, Pattern: usernamePattern},
		{Name: fieldEmail, Type: FieldEmail, Required: true},
		{Name: fieldPhone, Type: FieldText, Required: true, Pattern: phonePattern},
	},
}

// ProjectSchema validates a project's name and dates. Tasks are checked
// separately with TaskSchema so a bad task never rejects its project.
var ProjectSchema = Schema{
	Fields: []FieldSpec{
		{Name: fieldName, Type: FieldText, Required: true, MinLen: 3, MaxLen: 40},
		{Name: fieldOpenDate, Type: FieldDate, Required: true},
		{Name: fieldDueDate, Type: FieldDate},
	},
	Rules: []Rule{
		{Name: "due date not before open date", Check: func(r Record) bool {
			open, ok := ParseDate(r[fieldOpenDate])
			if !ok {
				return true
			}
			due, ok := ParseDate(r[fieldDueDate])
			if !ok {
				return true
			}
			return onOrAfter(due, open)
		}},
	},
}

// TaskSchema returns the task constraints bounded by the owning project.
// A project without a due date places no upper bound on its tasks' due dates.
func TaskSchema(projectOpen time.Time, projectDue *time.Time) Schema {
	rules := []Rule{
		{Name: "open date not before project open date", Check: func(r Record) bool {
			open, ok := ParseDate(r[fieldOpenDate])
			if !ok {
				return true
			}
			return onOrAfter(open, projectOpen)
		}},
	}
	if projectDue != nil {
		bound := *projectDue
		rules = append(rules, Rule{Name: "due date not after project due date", Check: func(r Record) bool {
			due, ok := ParseDate(r[fieldDueDate])
			if !ok {
				return true
			}
			return onOrAfter(bound, due)
		}})
	}

	return Schema{
		Fields: []FieldSpec{
			{Name: fieldName, Type: FieldText, Required: true, MinLen: 2, MaxLen: 40},
			{Name: fieldOpenDate, Type: FieldDate, Required: true},
			{Name: fieldDueDate, Type: FieldDate, Required: true},
			{Name: fieldExecutionType, Type: FieldEnum, Required: true, EnumValues: ExecutionTypeCodes()},
			{Name: fieldLabelType, Type: FieldEnum, Required: true, EnumValues: LabelTypeCodes()},
		},
		Rules: rules,
	}
}
