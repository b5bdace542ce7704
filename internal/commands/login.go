package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"flowtask/internal/cliconfig"
	"flowtask/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd stores an email as the local identity. Nothing is verified; the
// email only scopes which lists the server reports as yours.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store an email identity" }
func (c *LoginCmd) Usage() string     { return "flowtask login <email>" }
func (c *LoginCmd) NeedsIdentity() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Err, "error: email required")
		return exitcode.UserError
	}

	email := strings.TrimSpace(args[0])
	if !strings.Contains(email, "@") {
		fmt.Fprintf(env.Err, "error: invalid email: %s\n", email)
		return exitcode.UserError
	}

	if err := env.Cfg.SaveIdentity(cliconfig.Identity{Email: email}); err != nil {
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return exitcode.UserError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "logged in as %s\n", email)
	}
	return exitcode.Success
}
