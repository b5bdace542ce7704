package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"flowtask/internal/models"
)

// ErrTaskRefRequired indicates no task number was provided.
var ErrTaskRefRequired = errors.New("task number required")

// ErrTaskNotFound means the number fell outside the saved selection.
var ErrTaskNotFound = errors.New("task not found")

// ParseTaskNum parses a 1-based task number from args.
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	return num, nil
}

// ResolveTask maps a 1-based task number to a task by re-fetching the saved
// selection. Numbers are positional within the creation-time ordering, so
// they stay stable between a listing and the command that follows it unless
// another client mutates the set in between.
func ResolveTask(ctx context.Context, env *Env, num int) (models.Task, error) {
	sel := env.Cfg.LoadSelection()
	tasks, err := env.Client.ListTasks(ctx, sel.ListID, sel.Filter)
	if err != nil {
		return models.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, num)
	}
	return tasks[num-1], nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
