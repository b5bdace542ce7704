package commands

import (
	"context"
	"flag"
	"fmt"

	"flowtask/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints usage.
type HelpCmd struct{}

func (c *HelpCmd) Name() string        { return "help" }
func (c *HelpCmd) Aliases() []string   { return nil }
func (c *HelpCmd) Synopsis() string    { return "Print usage" }
func (c *HelpCmd) Usage() string       { return "flowtask help" }
func (c *HelpCmd) NeedsIdentity() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprint(env.Out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  flowtask                                          Show the default list
  flowtask list [--list <name>] [--my-day | --important] [--all]
  flowtask add [--list <name>] [--notes <text>] [--due <date>] [--important] [--my-day] <title...>
  flowtask done [--undo] <task-number>
  flowtask star [--undo] <task-number>
  flowtask myday [--undo] <task-number>
  flowtask note <task-number> [text...]
  flowtask show <task-number>
  flowtask rm <task-number>
  flowtask lists
  flowtask mklist [--default] <title...>
  flowtask watch
  flowtask login <email>
  flowtask logout
  flowtask whoami
  flowtask help
  flowtask version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override server URL (or FLOWTASK_SERVER)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Task numbers refer to the most recent listing.
`
