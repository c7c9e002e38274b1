package core

import (
	"context"

	"github.com/google/uuid"
)

// ProjectStore persists projects and reads them back with their tasks.
type ProjectStore interface {
	// SaveProjects inserts projects and their tasks in one write.
	// An empty slice is a no-op.
	SaveProjects(ctx context.Context, batchID uuid.UUID, projects []Project) error

	// ProjectsWithTasks returns every project with its tasks materialized.
	ProjectsWithTasks(ctx context.Context) ([]Project, error)
}

// EmployeeStore persists employees and reads them back with their linked tasks.
type EmployeeStore interface {
	// TaskIDs returns the identifiers of all persisted tasks.
	TaskIDs(ctx context.Context) (map[int64]struct{}, error)

	// SaveEmployees inserts employees and their task links in one write.
	// An empty slice is a no-op.
	SaveEmployees(ctx context.Context, batchID uuid.UUID, employees []Employee) error

	// EmployeesWithTasks returns every employee with EmployeeTask.Task populated.
	EmployeesWithTasks(ctx context.Context) ([]Employee, error)
}

// Store is the full persistence collaborator of the pipeline.
type Store interface {
	ProjectStore
	EmployeeStore
}
