package commands

import (
	"context"
	"flag"
	"fmt"

	"flowtask/internal/exitcode"
)

func init() {
	Register(&LogoutCmd{})
	Register(&WhoamiCmd{})
}

// LogoutCmd removes the stored identity.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string        { return "logout" }
func (c *LogoutCmd) Aliases() []string   { return nil }
func (c *LogoutCmd) Synopsis() string    { return "Remove the stored identity" }
func (c *LogoutCmd) Usage() string       { return "flowtask logout" }
func (c *LogoutCmd) NeedsIdentity() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string) int {
	if err := env.Cfg.ClearIdentity(); err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}
	if !env.Cfg.Quiet {
		fmt.Fprintln(env.Out, "logged out")
	}
	return exitcode.Success
}

// WhoamiCmd prints the stored identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string        { return "whoami" }
func (c *WhoamiCmd) Aliases() []string   { return nil }
func (c *WhoamiCmd) Synopsis() string    { return "Print the stored identity" }
func (c *WhoamiCmd) Usage() string       { return "flowtask whoami" }
func (c *WhoamiCmd) NeedsIdentity() bool { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string) int {
	id, ok := env.Cfg.LoadIdentity()
	if !ok {
		fmt.Fprintln(env.Err, "error: not logged in (run: flowtask login <email>)")
		return exitcode.AuthError
	}
	fmt.Fprintln(env.Out, id.Email)
	return exitcode.Success
}
