package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var projectValidator = NewValidator(ProjectSchema)

// ImportProjects decodes an XML project batch, validates every project and
// task, and persists the accepted projects in a single store write.
// It returns the outcome log, one line per project or rejected task.
//
// A malformed batch or a failed write aborts the call; rejected records never do.
func ImportProjects(ctx context.Context, store ProjectStore, batch []byte) (string, error) {
	log, err := importProjects(ctx, store, uuid.New(), batch, slog.Default())
	if err != nil {
		return "", err
	}
	return log.String(), nil
}

func importProjects(ctx context.Context, store ProjectStore, batchID uuid.UUID, batch []byte, logger *slog.Logger) (*ImportLog, error) {
	candidates, err := DecodeProjectBatch(batch)
	if err != nil {
		return nil, err
	}

	log := &ImportLog{}
	projects := make([]Project, 0, len(candidates))

	for i, c := range candidates {
		project, ok := buildProject(c, i, log, logger)
		if !ok {
			log.fail()
			continue
		}
		projects = append(projects, project)
		log.success(successfullyImportedProject, project.Name, len(project.Tasks))
	}

	if err := store.SaveProjects(ctx, batchID, projects); err != nil {
		return nil, fmt.Errorf("save projects: %w", err)
	}

	return log, nil
}

// buildProject validates a candidate and attaches its surviving tasks.
// Rejected tasks are written to log as they are found; the returned bool
// reports whether the project itself was accepted.
func buildProject(c ProjectCandidate, index int, log *ImportLog, logger *slog.Logger) (Project, bool) {
	open, ok := ParseDate(c.OpenDate)
	if !ok {
		logger.Debug("project rejected", "index", index, "reason", "unparseable open date")
		return Project{}, false
	}

	var due *time.Time
	if c.DueDate != "" {
		d, ok := ParseDate(c.DueDate)
		if !ok {
			logger.Debug("project rejected", "index", index, "reason", "unparseable due date")
			return Project{}, false
		}
		due = &d
	}

	if err := projectValidator.FirstFailure(c.Record()); err != nil {
		logger.Debug("project rejected", "index", index, "reason", err.Error())
		return Project{}, false
	}

	project := Project{
		Name:     c.Name,
		OpenDate: open,
		DueDate:  due,
		Tasks:    make([]Task, 0, len(c.Tasks)),
	}

	taskValidator := NewValidator(TaskSchema(open, due))
	for j, tc := range c.Tasks {
		if err := taskValidator.FirstFailure(tc.Record()); err != nil {
			logger.Debug("task rejected", "project_index", index, "task_index", j, "reason", err.Error())
			log.fail()
			continue
		}
		project.Tasks = append(project.Tasks, buildTask(tc))
	}

	return project, true
}

// buildTask converts a validated task candidate.
func buildTask(c TaskCandidate) Task {
	open, _ := ParseDate(c.OpenDate)
	due, _ := ParseDate(c.DueDate)
	return Task{
		Name:          c.Name,
		OpenDate:      open,
		DueDate:       due,
		ExecutionType: ExecutionType(parseEnumCode(c.ExecutionType)),
		LabelType:     LabelType(parseEnumCode(c.LabelType)),
	}
}
