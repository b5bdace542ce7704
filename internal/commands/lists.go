package commands

import (
	"context"
	"flag"
	"fmt"

	"flowtask/internal/exitcode"
	"flowtask/internal/output"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd prints all lists.
type ListsCmd struct{}

func (c *ListsCmd) Name() string        { return "lists" }
func (c *ListsCmd) Aliases() []string   { return nil }
func (c *ListsCmd) Synopsis() string    { return "Show all lists" }
func (c *ListsCmd) Usage() string       { return "flowtask lists" }
func (c *ListsCmd) NeedsIdentity() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string) int {
	lists, err := env.Client.ListLists(ctx)
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(lists) == 0 {
		if !env.Cfg.Quiet {
			fmt.Fprintln(env.Out, "no lists")
		}
		return exitcode.Success
	}

	fmtr := output.NewFormatter(env.Out)
	for _, list := range lists {
		fmtr.List(list)
	}
	return exitcode.Success
}
