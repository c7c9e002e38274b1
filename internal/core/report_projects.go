package core

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
)

// ProjectExport is one project row of the projects-with-tasks report.
type ProjectExport struct {
	XMLName     xml.Name     `xml:"Project" json:"-" yaml:"-"`
	TasksCount  int          `xml:"TasksCount,attr" json:"TasksCount" yaml:"TasksCount"`
	ProjectName string       `xml:"ProjectName" json:"ProjectName" yaml:"ProjectName"`
	HasEndDate  string       `xml:"HasEndDate" json:"HasEndDate" yaml:"HasEndDate"`
	Tasks       []TaskExport `xml:"Tasks>Task" json:"Tasks" yaml:"Tasks"`
}

// TaskExport is a task projected to its name and label.
type TaskExport struct {
	Name  string `xml:"Name" json:"Name" yaml:"Name"`
	Label string `xml:"Label" json:"Label" yaml:"Label"`
}

type projectsDocument struct {
	XMLName  xml.Name        `xml:"Projects"`
	Projects []ProjectExport `xml:"Project"`
}

// BuildProjectsReport keeps projects with at least one task, projects them,
// sorts their tasks by name, and orders projects by task count descending
// then project name ascending.
func BuildProjectsReport(projects []Project) []ProjectExport {
	rows := make([]ProjectExport, 0, len(projects))

	for _, p := range projects {
		if len(p.Tasks) == 0 {
			continue
		}

		tasks := make([]TaskExport, len(p.Tasks))
		for i, t := range p.Tasks {
			tasks[i] = TaskExport{Name: t.Name, Label: t.LabelType.String()}
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Name < tasks[j].Name
		})

		hasEndDate := "No"
		if p.DueDate != nil {
			hasEndDate = "Yes"
		}

		rows = append(rows, ProjectExport{
			TasksCount:  len(tasks),
			ProjectName: p.Name,
			HasEndDate:  hasEndDate,
			Tasks:       tasks,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TasksCount != rows[j].TasksCount {
			return rows[i].TasksCount > rows[j].TasksCount
		}
		return rows[i].ProjectName < rows[j].ProjectName
	})

	return rows
}

// ExportProjectsWithTasks renders the projects-with-tasks report from the
// current store state. The default format is XML.
func ExportProjectsWithTasks(ctx context.Context, store ProjectStore, format Format) (string, error) {
	projects, err := store.ProjectsWithTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("load projects: %w", err)
	}

	rows := BuildProjectsReport(projects)
	return render(format, projectsDocument{Projects: rows}, rows)
}
