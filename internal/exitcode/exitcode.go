// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, rejected input).
	UserError = 1

	// AuthError indicates a missing or expired session, or a config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3

	// Forbidden indicates the signed-in user lacks the role for the command.
	Forbidden = 4
)
