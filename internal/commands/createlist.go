package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"flowtask/internal/client"
	"flowtask/internal/exitcode"
)

func init() {
	Register(&MklistCmd{})
}

// MklistCmd creates a list owned by the stored identity.
type MklistCmd struct {
	isDefault bool
}

func (c *MklistCmd) Name() string        { return "mklist" }
func (c *MklistCmd) Aliases() []string   { return []string{"createlist"} }
func (c *MklistCmd) Synopsis() string    { return "Create a list" }
func (c *MklistCmd) Usage() string       { return "flowtask mklist [--default] <title...>" }
func (c *MklistCmd) NeedsIdentity() bool { return true }

func (c *MklistCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.isDefault, "default", false, "")
}

func (c *MklistCmd) Run(ctx context.Context, env *Env, args []string) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(env.Err, "error: title required")
		return exitcode.UserError
	}

	list, err := env.Client.CreateList(ctx, client.ListDraft{
		Title:          title,
		UserIdentifier: env.Email,
		IsDefault:      c.isDefault,
	})
	if err != nil {
		fmt.Fprintf(env.Err, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Cfg.Quiet {
		fmt.Fprintf(env.Out, "created list %s (%s)\n", list.Title, list.ID)
	}
	return exitcode.Success
}
