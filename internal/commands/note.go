package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"flowtask/internal/exitcode"
	"flowtask/internal/output"
)

func init() {
	Register(&NoteCmd{})
	Register(&ShowCmd{})
}

// NoteCmd replaces a task's notes. An empty note clears them.
type NoteCmd struct{}

func (c *NoteCmd) Name() string        { return "note" }
func (c *NoteCmd) Aliases() []string   { return nil }
func (c *NoteCmd) Synopsis() string    { return "Set a task's notes" }
func (c *NoteCmd) Usage() string       { return "flowtask note <task-number> [text...]" }
func (c *NoteCmd) NeedsIdentity() bool { return true }

func (c *NoteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NoteCmd) Run(ctx context.Context, env *Env, args []string) int {
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

	notes := strings.Join(args[1:], " ")
	updated, ok, err := env.Client.UpdateTask(ctx, task.ID.String(), map[string]interface{}{"notes": notes})
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if !ok {
		fmt.Fprintf(env.Err, "error: task not found: %d\n", num)
		return exitcode.UserError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "noted %s\n", updated.Title)
	}
	return exitcode.Success
}

// ShowCmd prints the detailed view of one task, enrichment included.
type ShowCmd struct{}

func (c *ShowCmd) Name() string        { return "show" }
func (c *ShowCmd) Aliases() []string   { return []string{"info"} }
func (c *ShowCmd) Synopsis() string    { return "Show a task in detail" }
func (c *ShowCmd) Usage() string       { return "flowtask show <task-number>" }
func (c *ShowCmd) NeedsIdentity() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string) int {
	num, err := ParseTaskNum(args)
	if err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, env, num)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			fmt.Fprintf(env.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	output.NewFormatter(env.Out).TaskDetail(task)
	return exitcode.Success
}
