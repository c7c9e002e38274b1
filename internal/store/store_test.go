package store

import (
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/teistermask/internal/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resettable is implemented by both backends.
type resettable interface {
	core.Store
	Reset(ctx context.Context) error
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) resettable) {
	t.Run("projects round trip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		projects := []core.Project{
			{
				Name:     "Apollo",
				OpenDate: date("2019-01-01"),
				DueDate:  datePtr("2019-12-31"),
				Tasks: []core.Task{
					{Name: "Design", OpenDate: date("2019-02-01"), DueDate: date("2019-03-01"),
						ExecutionType: core.InProgress, LabelType: core.JavaAdvanced},
					{Name: "Build", OpenDate: date("2019-03-01"), DueDate: date("2019-04-01"),
						ExecutionType: core.Finished, LabelType: core.Hibernate},
				},
			},
			{Name: "Gemini", OpenDate: date("2020-05-05")},
		}
		require.NoError(t, s.SaveProjects(ctx, uuid.New(), projects))

		assert.NotZero(t, projects[0].ID)
		assert.NotEqual(t, projects[0].ID, projects[1].ID)
		for _, task := range projects[0].Tasks {
			assert.NotZero(t, task.ID)
			assert.Equal(t, projects[0].ID, task.ProjectID)
		}

		got, err := s.ProjectsWithTasks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Apollo", got[0].Name)
		assert.True(t, got[0].OpenDate.Equal(date("2019-01-01")))
		require.NotNil(t, got[0].DueDate)
		assert.True(t, got[0].DueDate.Equal(date("2019-12-31")))
		require.Len(t, got[0].Tasks, 2)
		assert.Equal(t, "Design", got[0].Tasks[0].Name)
		assert.Equal(t, core.InProgress, got[0].Tasks[0].ExecutionType)
		assert.Equal(t, core.JavaAdvanced, got[0].Tasks[0].LabelType)

		assert.Equal(t, "Gemini", got[1].Name)
		assert.Nil(t, got[1].DueDate)
		assert.Empty(t, got[1].Tasks)

		ids, err := s.TaskIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Contains(t, ids, projects[0].Tasks[0].ID)
		assert.Contains(t, ids, projects[0].Tasks[1].ID)
	})

	t.Run("employees round trip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		projects := []core.Project{{
			Name:     "Apollo",
			OpenDate: date("2019-01-01"),
			Tasks: []core.Task{
				{Name: "Design", OpenDate: date("2019-02-01"), DueDate: date("2019-03-01")},
			},
		}}
		require.NoError(t, s.SaveProjects(ctx, uuid.New(), projects))
		taskID := projects[0].Tasks[0].ID

		employees := []core.Employee{
			{Username: "alex", Email: "alex@example.com", Phone: "123-456-7890",
				Tasks: []core.EmployeeTask{{TaskID: taskID}}},
			{Username: "idle", Email: "idle@example.com", Phone: "123-456-7891"},
		}
		require.NoError(t, s.SaveEmployees(ctx, uuid.New(), employees))
		assert.NotZero(t, employees[0].ID)
		assert.Equal(t, employees[0].ID, employees[0].Tasks[0].EmployeeID)

		got, err := s.EmployeesWithTasks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "alex", got[0].Username)
		assert.Equal(t, "alex@example.com", got[0].Email)
		require.Len(t, got[0].Tasks, 1)
		require.NotNil(t, got[0].Tasks[0].Task)
		assert.Equal(t, "Design", got[0].Tasks[0].Task.Name)
		assert.Equal(t, projects[0].ID, got[0].Tasks[0].Task.ProjectID)

		assert.Equal(t, "idle", got[1].Username)
		assert.Empty(t, got[1].Tasks)
	})

	t.Run("empty saves are no-ops", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.SaveProjects(ctx, uuid.New(), nil))
		require.NoError(t, s.SaveEmployees(ctx, uuid.New(), []core.Employee{}))

		projects, err := s.ProjectsWithTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)

		ids, err := s.TaskIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("reset clears data", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.SaveProjects(ctx, uuid.New(), []core.Project{{Name: "Apollo", OpenDate: date("2019-01-01")}}))
		require.NoError(t, s.Reset(ctx))

		projects, err := s.ProjectsWithTasks(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestMemory_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) resettable {
		return NewMemory()
	})
}

func TestMemory_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.SaveProjects(ctx, uuid.New(), []core.Project{{
		Name:     "Apollo",
		OpenDate: date("2019-01-01"),
		DueDate:  datePtr("2019-12-31"),
		Tasks:    []core.Task{{Name: "Design"}},
	}}))

	first, err := m.ProjectsWithTasks(ctx)
	require.NoError(t, err)
	first[0].Name = "changed"
	first[0].Tasks[0].Name = "changed"
	*first[0].DueDate = date("2030-01-01")

	second, err := m.ProjectsWithTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", second[0].Name)
	assert.Equal(t, "Design", second[0].Tasks[0].Name)
	assert.True(t, second[0].DueDate.Equal(date("2019-12-31")))
}

func TestMemory_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	batch := []core.Project{
		{Name: "A", Tasks: []core.Task{{Name: "t1"}, {Name: "t2"}}},
		{Name: "B", Tasks: []core.Task{{Name: "t3"}}},
	}
	require.NoError(t, m.SaveProjects(ctx, uuid.New(), batch))

	assert.Equal(t, int64(1), batch[0].ID)
	assert.Equal(t, int64(2), batch[1].ID)
	assert.Equal(t, int64(1), batch[0].Tasks[0].ID)
	assert.Equal(t, int64(3), batch[1].Tasks[0].ID)
	assert.Equal(t, 1, m.BatchCount())
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	assert.ErrorIs(t, m.SaveProjects(ctx, uuid.New(), []core.Project{{Name: "A"}}), context.Canceled)
	_, err := m.TaskIDs(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
