package commands

import (
	"context"
	"flag"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd marks a task completed, or reopens it with --undo.
type DoneCmd struct {
	undo bool
}

func (c *DoneCmd) Name() string        { return "done" }
func (c *DoneCmd) Aliases() []string   { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string    { return "Mark a task completed" }
func (c *DoneCmd) Usage() string       { return "flowtask done [--undo] <task-number>" }
func (c *DoneCmd) NeedsIdentity() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.undo, "undo", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string) int {
	verb := "completed"
	if c.undo {
		verb = "reopened"
	}
	return runToggle(ctx, env, args, "is_completed", !c.undo, verb)
}
