package commands

import (
	"context"
	"flag"
)

func init() {
	Register(&StarCmd{})
	Register(&MyDayCmd{})
}

// StarCmd toggles the important flag.
type StarCmd struct {
	undo bool
}

func (c *StarCmd) Name() string        { return "star" }
func (c *StarCmd) Aliases() []string   { return []string{"important"} }
func (c *StarCmd) Synopsis() string    { return "Mark a task important" }
func (c *StarCmd) Usage() string       { return "flowtask star [--undo] <task-number>" }
func (c *StarCmd) NeedsIdentity() bool { return true }

func (c *StarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.undo, "undo", false, "")
}

func (c *StarCmd) Run(ctx context.Context, env *Env, args []string) int {
	verb := "starred"
	if c.undo {
		verb = "unstarred"
	}
	return runToggle(ctx, env, args, "is_important", !c.undo, verb)
}

// MyDayCmd toggles the my-day flag.
type MyDayCmd struct {
	undo bool
}

func (c *MyDayCmd) Name() string        { return "myday" }
func (c *MyDayCmd) Aliases() []string   { return []string{"my-day"} }
func (c *MyDayCmd) Synopsis() string    { return "Add a task to my day" }
func (c *MyDayCmd) Usage() string       { return "flowtask myday [--undo] <task-number>" }
func (c *MyDayCmd) NeedsIdentity() bool { return true }

func (c *MyDayCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.undo, "undo", false, "")
}

func (c *MyDayCmd) Run(ctx context.Context, env *Env, args []string) int {
	verb := "added to my day:"
	if c.undo {
		verb = "removed from my day:"
	}
	return runToggle(ctx, env, args, "is_my_day", !c.undo, verb)
}
