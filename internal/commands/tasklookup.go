package commands

import (
	"context"
	"errors"
	"fmt"

	"todo/internal/service"
)

// errOutOfRange indicates a position past the end of the list.
var errOutOfRange = errors.New("task number out of range")

// resolveTaskID turns a reference into a task id. Positions are looked up
// in the current newest-first list; ids are passed through unchecked so the
// store decides what an unknown id means.
func resolveTaskID(ctx context.Context, svc service.Service, ref TaskRef) (int64, error) {
	if ref.ByID {
		return ref.Num, nil
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}

	if ref.Num < 1 || ref.Num > int64(len(tasks)) {
		return 0, fmt.Errorf("%w: %d", errOutOfRange, ref.Num)
	}

	return tasks[ref.Num-1].ID, nil
}
