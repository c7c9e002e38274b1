package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

var employeeValidator = NewValidator(EmployeeSchema)

// ImportEmployees decodes a JSON employee batch, validates every employee,
// links each one to the distinct already-persisted tasks it references, and
// persists the accepted employees in a single store write.
//
// Known task ids are loaded once up front, not per link.
func ImportEmployees(ctx context.Context, store EmployeeStore, batch []byte) (string, error) {
	log, err := importEmployees(ctx, store, uuid.New(), batch, slog.Default())
	if err != nil {
		return "", err
	}
	return log.String(), nil
}

func importEmployees(ctx context.Context, store EmployeeStore, batchID uuid.UUID, batch []byte, logger *slog.Logger) (*ImportLog, error) {
	candidates, err := DecodeEmployeeBatch(batch)
	if err != nil {
		return nil, err
	}

	known, err := store.TaskIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load task ids: %w", err)
	}

	log := &ImportLog{}
	employees := make([]Employee, 0, len(candidates))

	for i, c := range candidates {
		if err := employeeValidator.FirstFailure(c.Record()); err != nil {
			logger.Debug("employee rejected", "index", i, "reason", err.Error())
			log.fail()
			continue
		}

		employee := Employee{
			Username: c.Username,
			Email:    c.Email,
			Phone:    c.Phone,
		}

		for _, taskID := range distinct(c.Tasks) {
			if _, ok := known[taskID]; !ok {
				logger.Debug("task link rejected", "index", i, "task_id", taskID)
				log.fail()
				continue
			}
			employee.Tasks = append(employee.Tasks, EmployeeTask{TaskID: taskID})
		}

		employees = append(employees, employee)
		log.success(successfullyImportedEmployee, employee.Username, len(employee.Tasks))
	}

	if err := store.SaveEmployees(ctx, batchID, employees); err != nil {
		return nil, fmt.Errorf("save employees: %w", err)
	}

	return log, nil
}

// distinct drops repeated ids, keeping first-seen order.
func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
