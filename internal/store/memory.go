package store

import (
	"context"
	"sync"

	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/google/uuid"
)

// Memory implements core.Store in process memory.
// Ids are assigned sequentially from 1 per entity type, as a fresh
// database would. Reads return deep copies.
type Memory struct {
	mu sync.RWMutex

	projects  []core.Project
	employees []core.Employee
	tasks     map[int64]core.Task

	nextProjectID  int64
	nextTaskID     int64
	nextEmployeeID int64

	// batch ids of non-empty Save* calls
	batches []uuid.UUID
}

var _ core.Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[int64]core.Task)}
}

// SaveProjects stores projects and tasks, writing generated ids back into projects.
func (m *Memory) SaveProjects(ctx context.Context, batchID uuid.UUID, projects []core.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(projects) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range projects {
		p := &projects[i]
		m.nextProjectID++
		p.ID = m.nextProjectID

		for j := range p.Tasks {
			m.nextTaskID++
			p.Tasks[j].ID = m.nextTaskID
			p.Tasks[j].ProjectID = p.ID
			m.tasks[p.Tasks[j].ID] = p.Tasks[j]
		}

		m.projects = append(m.projects, cloneProject(*p))
	}
	m.batches = append(m.batches, batchID)
	return nil
}

// ProjectsWithTasks returns copies of all stored projects in insertion order.
func (m *Memory) ProjectsWithTasks(ctx context.Context) ([]core.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Project, len(m.projects))
	for i, p := range m.projects {
		out[i] = cloneProject(p)
	}
	return out, nil
}

// TaskIDs returns the ids of all stored tasks.
func (m *Memory) TaskIDs(ctx context.Context) (map[int64]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make(map[int64]struct{}, len(m.tasks))
	for id := range m.tasks {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// SaveEmployees stores employees and their links, writing generated ids back.
func (m *Memory) SaveEmployees(ctx context.Context, batchID uuid.UUID, employees []core.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(employees) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range employees {
		e := &employees[i]
		m.nextEmployeeID++
		e.ID = m.nextEmployeeID

		stored := *e
		stored.Tasks = make([]core.EmployeeTask, len(e.Tasks))
		for j := range e.Tasks {
			e.Tasks[j].EmployeeID = e.ID
			stored.Tasks[j] = core.EmployeeTask{EmployeeID: e.ID, TaskID: e.Tasks[j].TaskID}
		}
		m.employees = append(m.employees, stored)
	}
	m.batches = append(m.batches, batchID)
	return nil
}

// EmployeesWithTasks returns copies of all employees with linked tasks populated.
// Links to tasks that no longer exist are omitted.
func (m *Memory) EmployeesWithTasks(ctx context.Context) ([]core.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.Employee, len(m.employees))
	for i, e := range m.employees {
		cp := e
		cp.Tasks = make([]core.EmployeeTask, 0, len(e.Tasks))
		for _, link := range e.Tasks {
			task, ok := m.tasks[link.TaskID]
			if !ok {
				continue
			}
			cp.Tasks = append(cp.Tasks, core.EmployeeTask{
				EmployeeID: e.ID,
				TaskID:     link.TaskID,
				Task:       &task,
			})
		}
		out[i] = cp
	}
	return out, nil
}

// Reset removes all data and restarts id sequences.
func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects = nil
	m.employees = nil
	m.tasks = make(map[int64]core.Task)
	m.nextProjectID, m.nextTaskID, m.nextEmployeeID = 0, 0, 0
	m.batches = nil
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// BatchCount returns the number of non-empty Save* calls so far.
func (m *Memory) BatchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.batches)
}

func cloneProject(p core.Project) core.Project {
	cp := p
	if p.DueDate != nil {
		due := *p.DueDate
		cp.DueDate = &due
	}
	cp.Tasks = append([]core.Task(nil), p.Tasks...)
	return cp
}
