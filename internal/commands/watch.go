package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"flowtask/internal/events"
	"flowtask/internal/exitcode"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd streams the change feed to stdout until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Name() string        { return "watch" }
func (c *WatchCmd) Aliases() []string   { return nil }
func (c *WatchCmd) Synopsis() string    { return "Stream task changes" }
func (c *WatchCmd) Usage() string       { return "flowtask watch" }
func (c *WatchCmd) NeedsIdentity() bool { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, env *Env, args []string) int {
	session, err := env.Client.NewSession(ctx, env.Email)
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	env.Client.SetToken(session.Token)

	if !env.Cfg.Quiet {
		fmt.Fprintln(env.Out, "watching for changes (ctrl-c to stop)")
	}

	err = env.Client.SubscribeFeed(ctx, func(change events.TaskChange) {
		switch change.Type {
		case events.TypeInsert:
			fmt.Fprintf(env.Out, "+ %s\n", change.Record.Title)
		case events.TypeUpdate:
			fmt.Fprintf(env.Out, "~ %s\n", change.Record.Title)
		case events.TypeDelete:
			fmt.Fprintf(env.Out, "- %s\n", change.Record.ID)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
