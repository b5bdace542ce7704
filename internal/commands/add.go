package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"flowtask/internal/client"
	"flowtask/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates a task.
type AddCmd struct {
	listName  string
	notes     string
	due       string
	important bool
	myDay     bool
}

func (c *AddCmd) Name() string        { return "add" }
func (c *AddCmd) Aliases() []string   { return []string{"create"} }
func (c *AddCmd) Synopsis() string    { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "flowtask add [--list <name>] [--notes <text>] [--due <date>] [--important] [--my-day] <title...>"
}
func (c *AddCmd) NeedsIdentity() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.BoolVar(&c.important, "important", false, "")
	fs.BoolVar(&c.myDay, "my-day", false, "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(env.Err, "error: title required")
		return exitcode.UserError
	}

	var dueDate *time.Time
	if c.due != "" {
		parsed, err := time.Parse("2006-01-02", c.due)
		if err != nil {
			fmt.Fprintf(env.Err, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
		dueDate = &parsed
	}

	list, err := ResolveList(ctx, env, c.listName)
	if err != nil {
		if errors.Is(err, ErrListNotFound) || errors.Is(err, ErrListAmbiguous) || errors.Is(err, ErrNoLists) {
			fmt.Fprintf(env.Err, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	store := client.NewStore(env.Client)
	task, err := store.Add(ctx, client.TaskDraft{
		ListID:      list.ID.String(),
		Title:       title,
		Notes:       c.notes,
		DueDate:     dueDate,
		IsImportant: c.important,
		IsMyDay:     c.myDay,
	})
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "added %s to %s\n", task.Title, list.Title)
	}
	return exitcode.Success
}
