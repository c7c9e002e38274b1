// Package store provides the persistence backends of the import pipeline:
// a PostgreSQL store built on pgx and an in-memory store for tests and
// one-shot CLI runs.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/teistermask/internal/config"
	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ResetTimeout is the maximum duration for a Reset call.
const ResetTimeout = 30 * time.Second

// DB is the subset of *pgxpool.Pool used by Postgres.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// Postgres implements core.Store on a PostgreSQL database.
type Postgres struct {
	db DB
}

var _ core.Store = (*Postgres)(nil)

// NewPostgres wraps an open connection pool.
func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

// Connect opens and verifies a connection pool from cfg.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return pool, nil
}

// Migrate creates the schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Reset truncates every table and restarts the id sequences.
func (s *Postgres) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`TRUNCATE employees_tasks, employees, tasks, projects RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

const (
	insertProjectSQL = `
INSERT INTO projects (name, open_date, due_date, import_batch_id)
VALUES ($1, $2, $3, $4)
RETURNING id`

	insertTaskSQL = `
INSERT INTO tasks (project_id, name, open_date, due_date, execution_type, label_type, import_batch_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	insertEmployeeSQL = `
INSERT INTO employees (username, email, phone, import_batch_id)
VALUES ($1, $2, $3, $4)
RETURNING id`

	insertEmployeeTaskSQL = `
INSERT INTO employees_tasks (employee_id, task_id)
VALUES ($1, $2)`

	selectTaskIDsSQL = `SELECT id FROM tasks`

	selectProjectsWithTasksSQL = `
SELECT p.id, p.name, p.open_date, p.due_date,
       t.id, t.name, t.open_date, t.due_date, t.execution_type, t.label_type
FROM projects p
LEFT JOIN tasks t ON t.project_id = p.id
ORDER BY p.id, t.id`

	selectEmployeesWithTasksSQL = `
SELECT e.id, e.username, e.email, e.phone,
       t.id, t.project_id, t.name, t.open_date, t.due_date, t.execution_type, t.label_type
FROM employees e
LEFT JOIN employees_tasks et ON et.employee_id = e.id
LEFT JOIN tasks t ON t.id = et.task_id
ORDER BY e.id, et.task_id`
)

// SaveProjects inserts projects and their tasks in one transaction.
// Generated ids are written back into projects.
func (s *Postgres) SaveProjects(ctx context.Context, batchID uuid.UUID, projects []core.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pgBatchID := toPgUUID(batchID)

	for i := range projects {
		p := &projects[i]

		err := tx.QueryRow(ctx, insertProjectSQL,
			p.Name, toPgDate(p.OpenDate), toPgDatePtr(p.DueDate), pgBatchID,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert project %q: %w", p.Name, err)
		}

		if len(p.Tasks) == 0 {
			continue
		}

		batch := &pgx.Batch{}
		for _, t := range p.Tasks {
			batch.Queue(insertTaskSQL,
				p.ID, t.Name, toPgDate(t.OpenDate), toPgDate(t.DueDate),
				int16(t.ExecutionType), int16(t.LabelType), pgBatchID,
			)
		}

		if err := scanBatchIDs(tx.SendBatch(ctx, batch), len(p.Tasks), func(j int, id int64) {
			p.Tasks[j].ID = id
			p.Tasks[j].ProjectID = p.ID
		}); err != nil {
			return fmt.Errorf("insert tasks of project %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanBatchIDs reads one RETURNING id per queued statement and closes br.
func scanBatchIDs(br pgx.BatchResults, n int, set func(i int, id int64)) error {
	for i := 0; i < n; i++ {
		var id int64
		if err := br.QueryRow().Scan(&id); err != nil {
			br.Close()
			return err
		}
		set(i, id)
	}
	return br.Close()
}

// TaskIDs returns the ids of all persisted tasks.
func (s *Postgres) TaskIDs(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := s.db.Query(ctx, selectTaskIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("query task ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan task ids: %w", err)
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// SaveEmployees inserts employees and their task links in one transaction.
// Generated ids are written back into employees.
func (s *Postgres) SaveEmployees(ctx context.Context, batchID uuid.UUID, employees []core.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pgBatchID := toPgUUID(batchID)

	for i := range employees {
		e := &employees[i]

		err := tx.QueryRow(ctx, insertEmployeeSQL,
			e.Username, e.Email, e.Phone, pgBatchID,
		).Scan(&e.ID)
		if err != nil {
			return fmt.Errorf("insert employee %q: %w", e.Username, err)
		}

		if len(e.Tasks) == 0 {
			continue
		}

		batch := &pgx.Batch{}
		for j := range e.Tasks {
			e.Tasks[j].EmployeeID = e.ID
			batch.Queue(insertEmployeeTaskSQL, e.ID, e.Tasks[j].TaskID)
		}

		br := tx.SendBatch(ctx, batch)
		for range e.Tasks {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("link tasks of employee %q: %w", e.Username, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("link tasks of employee %q: %w", e.Username, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// taskColumns holds the nullable task columns of a LEFT JOIN row.
type taskColumns struct {
	ID            pgtype.Int8
	ProjectID     pgtype.Int8
	Name          pgtype.Text
	OpenDate      pgtype.Date
	DueDate       pgtype.Date
	ExecutionType pgtype.Int2
	LabelType     pgtype.Int2
}

func (c taskColumns) task() core.Task {
	return core.Task{
		ID:            c.ID.Int64,
		ProjectID:     c.ProjectID.Int64,
		Name:          c.Name.String,
		OpenDate:      c.OpenDate.Time,
		DueDate:       c.DueDate.Time,
		ExecutionType: core.ExecutionType(c.ExecutionType.Int16),
		LabelType:     core.LabelType(c.LabelType.Int16),
	}
}

// ProjectsWithTasks returns every project with its tasks, ordered by id.
func (s *Postgres) ProjectsWithTasks(ctx context.Context) ([]core.Project, error) {
	rows, err := s.db.Query(ctx, selectProjectsWithTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []core.Project
	for rows.Next() {
		var (
			id       int64
			name     string
			openDate pgtype.Date
			dueDate  pgtype.Date
			tc       taskColumns
		)
		if err := rows.Scan(&id, &name, &openDate, &dueDate,
			&tc.ID, &tc.Name, &tc.OpenDate, &tc.DueDate, &tc.ExecutionType, &tc.LabelType,
		); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}

		if n := len(projects); n == 0 || projects[n-1].ID != id {
			projects = append(projects, core.Project{
				ID:       id,
				Name:     name,
				OpenDate: openDate.Time,
				DueDate:  fromPgDatePtr(dueDate),
			})
		}

		if tc.ID.Valid {
			tc.ProjectID = pgtype.Int8{Int64: id, Valid: true}
			p := &projects[len(projects)-1]
			p.Tasks = append(p.Tasks, tc.task())
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}

	return projects, nil
}

// EmployeesWithTasks returns every employee with linked tasks populated,
// ordered by id.
func (s *Postgres) EmployeesWithTasks(ctx context.Context) ([]core.Employee, error) {
	rows, err := s.db.Query(ctx, selectEmployeesWithTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []core.Employee
	for rows.Next() {
		var (
			e  core.Employee
			tc taskColumns
		)
		if err := rows.Scan(&e.ID, &e.Username, &e.Email, &e.Phone,
			&tc.ID, &tc.ProjectID, &tc.Name, &tc.OpenDate, &tc.DueDate, &tc.ExecutionType, &tc.LabelType,
		); err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}

		if n := len(employees); n == 0 || employees[n-1].ID != e.ID {
			employees = append(employees, e)
		}

		if tc.ID.Valid {
			task := tc.task()
			last := &employees[len(employees)-1]
			last.Tasks = append(last.Tasks, core.EmployeeTask{
				EmployeeID: last.ID,
				TaskID:     task.ID,
				Task:       &task,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read employees: %w", err)
	}

	return employees, nil
}
