package commands

import (
	"context"
	"flag"
	"fmt"

	"flowtask/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd deletes a task. Deletion is idempotent on the server, so a task that
// vanished between listing and delete still reports success.
type RmCmd struct{}

func (c *RmCmd) Name() string        { return "rm" }
func (c *RmCmd) Aliases() []string   { return []string{"delete"} }
func (c *RmCmd) Synopsis() string    { return "Delete a task" }
func (c *RmCmd) Usage() string       { return "flowtask rm <task-number>" }
func (c *RmCmd) NeedsIdentity() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
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

	if err := env.Client.DeleteTask(ctx, task.ID.String()); err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "deleted %s\n", task.Title)
	}
	return exitcode.Success
}
