package core

import (
	"context"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store that records every call.
type fakeStore struct {
	projects  []Project
	employees []Employee
	taskIDs   map[int64]struct{}

	nextID int64

	projectSaves  int
	employeeSaves int
	taskIDLoads   int
	batchIDs      []uuid.UUID

	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{taskIDs: make(map[int64]struct{})}
}

func (f *fakeStore) SaveProjects(ctx context.Context, batchID uuid.UUID, projects []Project) error {
	f.projectSaves++
	f.batchIDs = append(f.batchIDs, batchID)
	if f.saveErr != nil {
		return f.saveErr
	}
	for i := range projects {
		f.nextID++
		projects[i].ID = f.nextID
		for j := range projects[i].Tasks {
			f.nextID++
			projects[i].Tasks[j].ID = f.nextID
			projects[i].Tasks[j].ProjectID = projects[i].ID
			f.taskIDs[f.nextID] = struct{}{}
		}
		f.projects = append(f.projects, projects[i])
	}
	return nil
}

func (f *fakeStore) ProjectsWithTasks(ctx context.Context) ([]Project, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.projects, nil
}

func (f *fakeStore) TaskIDs(ctx context.Context) (map[int64]struct{}, error) {
	f.taskIDLoads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.taskIDs, nil
}

func (f *fakeStore) SaveEmployees(ctx context.Context, batchID uuid.UUID, employees []Employee) error {
	f.employeeSaves++
	f.batchIDs = append(f.batchIDs, batchID)
	if f.saveErr != nil {
		return f.saveErr
	}
	for i := range employees {
		f.nextID++
		employees[i].ID = f.nextID
	}
	f.employees = append(f.employees, employees...)
	return nil
}

func (f *fakeStore) EmployeesWithTasks(ctx context.Context) ([]Employee, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.employees, nil
}

// addTask registers a persisted task id, as a prior project import would.
func (f *fakeStore) addTask(id int64) {
	f.taskIDs[id] = struct{}{}
}
