package commands

import (
	"context"
	"errors"
	"fmt"

	"flowtask/internal/client"
	"flowtask/internal/exitcode"
)

// runToggle resolves a task number and flips one boolean field through the
// optimistic store.
func runToggle(ctx context.Context, env *Env, args []string, field string, value bool, verb string) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, env, num)
	if err != nil {
		if isUserErr(err) {
			fmt.Fprintf(env.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	store := client.NewStore(env.Client)
	sel := env.Cfg.LoadSelection()
	if err := store.Load(ctx, sel.ListID, sel.Filter); err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if err := store.SetField(ctx, task.ID.String(), field, value); err != nil {
		if errors.Is(err, client.ErrTaskGone) || errors.Is(err, client.ErrTaskNotLoaded) {
			fmt.Fprintf(env.Err, "error: task not found: %d\n", num)
			return exitcode.UserError
		}
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "%s %s\n", verb, task.Title)
	}
	return exitcode.Success
}

// isUserErr distinguishes "you asked for something that does not exist" from
// transport failures.
func isUserErr(err error) bool {
	return errors.Is(err, ErrTaskRefRequired) || errors.Is(err, ErrTaskNotFound)
}
