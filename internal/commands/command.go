// Package commands provides the command interface and implementations for
// the flowtask CLI.
package commands

import (
	"context"
	"flag"
	"io"

	"flowtask/internal/client"
	"flowtask/internal/cliconfig"
)

// Env carries everything a command needs to run.
type Env struct {
	Cfg    *cliconfig.Config
	Client *client.Client

	// Email is the stored identity, empty when not logged in.
	Email string

	Out io.Writer
	Err io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsIdentity reports whether the command requires a stored identity.
	// login, logout, help and version do not.
	NeedsIdentity() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns the exit code.
	Run(ctx context.Context, env *Env, args []string) int
}
