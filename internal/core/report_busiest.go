package core

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"time"
)

// DefaultBusiestLimit is the number of employees kept by the busiest report.
const DefaultBusiestLimit = 10

// EmployeeExport is one employee row of the busiest-employees report.
type EmployeeExport struct {
	XMLName  xml.Name             `xml:"Employee" json:"-" yaml:"-"`
	Username string               `xml:"Username" json:"Username" yaml:"Username"`
	Tasks    []EmployeeTaskExport `xml:"Tasks>Task" json:"Tasks" yaml:"Tasks"`
}

// EmployeeTaskExport is a qualifying task rendered for the busiest report.
type EmployeeTaskExport struct {
	TaskName      string `xml:"TaskName" json:"TaskName" yaml:"TaskName"`
	OpenDate      string `xml:"OpenDate" json:"OpenDate" yaml:"OpenDate"`
	DueDate       string `xml:"DueDate" json:"DueDate" yaml:"DueDate"`
	LabelType     string `xml:"LabelType" json:"LabelType" yaml:"LabelType"`
	ExecutionType string `xml:"ExecutionType" json:"ExecutionType" yaml:"ExecutionType"`
}

type employeesDocument struct {
	XMLName   xml.Name         `xml:"Employees"`
	Employees []EmployeeExport `xml:"Employee"`
}

// BuildBusiestReport keeps employees with at least one linked task opened on
// or after date. Each employee lists only those tasks, by due date descending
// then name ascending. Employees are ordered by qualifying task count
// descending then username ascending, and the sorted list is cut to limit
// (limit <= 0 keeps everyone).
func BuildBusiestReport(employees []Employee, date time.Time, limit int) []EmployeeExport {
	type ranked struct {
		username string
		tasks    []Task
	}

	var candidates []ranked
	for _, e := range employees {
		var tasks []Task
		for _, link := range e.Tasks {
			if link.Task == nil || !onOrAfter(link.Task.OpenDate, date) {
				continue
			}
			tasks = append(tasks, *link.Task)
		}
		if len(tasks) == 0 {
			continue
		}

		sort.SliceStable(tasks, func(i, j int) bool {
			if !tasks[i].DueDate.Equal(tasks[j].DueDate) {
				return tasks[i].DueDate.After(tasks[j].DueDate)
			}
			return tasks[i].Name < tasks[j].Name
		})
		candidates = append(candidates, ranked{username: e.Username, tasks: tasks})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].tasks) != len(candidates[j].tasks) {
			return len(candidates[i].tasks) > len(candidates[j].tasks)
		}
		return candidates[i].username < candidates[j].username
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	rows := make([]EmployeeExport, len(candidates))
	for i, c := range candidates {
		tasks := make([]EmployeeTaskExport, len(c.tasks))
		for j, t := range c.tasks {
			tasks[j] = EmployeeTaskExport{
				TaskName:      t.Name,
				OpenDate:      FormatShortDate(t.OpenDate),
				DueDate:       FormatShortDate(t.DueDate),
				LabelType:     t.LabelType.String(),
				ExecutionType: t.ExecutionType.String(),
			}
		}
		rows[i] = EmployeeExport{Username: c.username, Tasks: tasks}
	}

	return rows
}

// ExportBusiestEmployees renders the busiest-employees report for tasks
// opened on or after date. The default format is indented JSON.
func ExportBusiestEmployees(ctx context.Context, store EmployeeStore, date time.Time, limit int, format Format) (string, error) {
	employees, err := store.EmployeesWithTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("load employees: %w", err)
	}

	rows := BuildBusiestReport(employees, date, limit)
	return render(format, employeesDocument{Employees: rows}, rows)
}
