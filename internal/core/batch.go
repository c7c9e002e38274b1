package core

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// ProjectCandidate is one <Project> element of a project batch.
type ProjectCandidate struct {
	Name     string          `xml:"Name"`
	OpenDate string          `xml:"OpenDate"`
	DueDate  string          `xml:"DueDate"`
	Tasks    []TaskCandidate `xml:"Tasks>Task"`
}

// TaskCandidate is one <Task> element nested in a project candidate.
// Enum codes are kept as text so a bad code rejects only the task.
type TaskCandidate struct {
	Name          string `xml:"Name"`
	OpenDate      string `xml:"OpenDate"`
	DueDate       string `xml:"DueDate"`
	ExecutionType string `xml:"ExecutionType"`
	LabelType     string `xml:"LabelType"`
}

// EmployeeCandidate is one element of an employee batch.
type EmployeeCandidate struct {
	Username string  `json:"Username"`
	Email    string  `json:"Email"`
	Phone    string  `json:"Phone"`
	Tasks    []int64 `json:"Tasks"`
}

type projectBatch struct {
	XMLName  xml.Name           `xml:"Projects"`
	Projects []ProjectCandidate `xml:"Project"`
}

// Record returns the candidate's fields for validation.
func (c ProjectCandidate) Record() Record {
	return Record{
		fieldName:     c.Name,
		fieldOpenDate: c.OpenDate,
		fieldDueDate:  c.DueDate,
	}
}

// Record returns the candidate's fields for validation.
func (c TaskCandidate) Record() Record {
	return Record{
		fieldName:          c.Name,
		fieldOpenDate:      c.OpenDate,
		fieldDueDate:       c.DueDate,
		fieldExecutionType: c.ExecutionType,
		fieldLabelType:     c.LabelType,
	}
}

// Record returns the candidate's own fields for validation. Task links are
// checked against the store, not the schema.
func (c EmployeeCandidate) Record() Record {
	return Record{
		fieldUsername: c.Username,
		fieldEmail:    c.Email,
		fieldPhone:    c.Phone,
	}
}

// DecodeProjectBatch decodes a <Projects> XML document.
func DecodeProjectBatch(data []byte) ([]ProjectCandidate, error) {
	var batch projectBatch
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: decode projects: %v", ErrMalformedBatch, err)
	}
	return batch.Projects, nil
}

// DecodeEmployeeBatch decodes a JSON array of employees.
func DecodeEmployeeBatch(data []byte) ([]EmployeeCandidate, error) {
	var batch []EmployeeCandidate
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%w: decode employees: %v", ErrMalformedBatch, err)
	}
	return batch, nil
}

// parseEnumCode converts a validated enum code to its integer value.
func parseEnumCode(code string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(code))
	return n
}
