// Package cli wires command-line parsing to the command registry.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"flowtask/internal/client"
	"flowtask/internal/cliconfig"
	"flowtask/internal/commands"
	"flowtask/internal/exitcode"
)

// ClientFactory creates an API client from config. Tests swap it to point at
// an httptest server.
type ClientFactory func(cfg *cliconfig.Config) *client.Client

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ClientFactory
}

func NewDispatcher(registry *commands.Registry, factory ClientFactory) *Dispatcher {
	if factory == nil {
		factory = func(cfg *cliconfig.Config) *client.Client {
			return client.New(cfg.ServerURL)
		}
	}
	return &Dispatcher{registry: registry, factory: factory}
}

// Run parses arguments and dispatches to the appropriate command. Returns
// the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// Bare invocation shows the default list.
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configDir, serverURL string
	var quiet, debug bool
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&serverURL, "server", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := cliconfig.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if serverURL != "" {
		cfg.ServerURL = strings.TrimRight(serverURL, "/")
	}

	env := &commands.Env{
		Cfg:    cfg,
		Client: d.factory(cfg),
		Out:    out,
		Err:    errOut,
	}

	if id, ok := cfg.LoadIdentity(); ok {
		env.Email = id.Email
	} else if cmd.NeedsIdentity() {
		fmt.Fprintln(errOut, "error: not logged in (run: flowtask login <email>)")
		return exitcode.AuthError
	}

	return cmd.Run(ctx, env, positional)
}
