// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, not found).
	UserError = 1

	// AuthError indicates a missing or broken identity (not logged in).
	AuthError = 2

	// BackendError indicates a server/API/network error.
	BackendError = 3
)
