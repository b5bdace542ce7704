package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"flowtask/internal/cliconfig"
	"flowtask/internal/exitcode"
	"flowtask/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd prints tasks. The selection it prints is saved so task numbers in
// following commands resolve against the same view.
type ListCmd struct {
	listName  string
	myDay     bool
	important bool
	all       bool
}

func (c *ListCmd) Name() string        { return "list" }
func (c *ListCmd) Aliases() []string   { return []string{"ls"} }
func (c *ListCmd) Synopsis() string    { return "Show tasks" }
func (c *ListCmd) Usage() string {
	return "flowtask list [--list <name>] [--my-day | --important] [--all]"
}
func (c *ListCmd) NeedsIdentity() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.myDay, "my-day", false, "")
	fs.BoolVar(&c.important, "important", false, "")
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	if c.myDay && c.important {
		fmt.Fprintln(env.Err, "error: --my-day and --important are mutually exclusive")
		return exitcode.UserError
	}

	filter := ""
	if c.myDay {
		filter = "my-day"
	}
	if c.important {
		filter = "important"
	}

	listID := ""
	if c.listName != "" {
		list, err := ResolveList(ctx, env, c.listName)
		if err != nil {
			if errors.Is(err, ErrListNotFound) || errors.Is(err, ErrListAmbiguous) || errors.Is(err, ErrNoLists) {
				fmt.Fprintf(env.Err, "error: %v\n", err)
				return exitcode.UserError
			}
			fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		listID = list.ID.String()
	} else if !c.all && filter == "" {
		// Bare "list" shows the default list, not every task.
		list, err := ResolveList(ctx, env, "")
		if err != nil {
			if errors.Is(err, ErrNoLists) {
				fmt.Fprintln(env.Out, "no lists (run: flowtask mklist <title>)")
				return exitcode.Success
			}
			fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		listID = list.ID.String()
	}

	tasks, err := env.Client.ListTasks(ctx, listID, filter)
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if err := env.Cfg.SaveSelection(cliconfig.Selection{ListID: listID, Filter: filter}); err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	if len(tasks) == 0 {
		if !env.Cfg.Quiet {
			fmt.Fprintln(env.Out, "no tasks")
		}
		return exitcode.Success
	}

	fmtr := output.NewFormatter(env.Out)
	for i, task := range tasks {
		fmtr.Task(i+1, task)
	}
	return exitcode.Success
}
