// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tasktrack/internal/config"
	"tasktrack/internal/log"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, paths, API settings).
	Config *config.Config
	// Service and Session are nil if NeedsService() returns false.
	Service service.Service
	Session *session.Store
	Logger  log.Logger
	// In is read for passwords and confirmations.
	In io.Reader
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

	// NeedsService returns true if the command talks to the API.
	// Commands like help and version return false.
	NeedsService() bool

	// Route returns the navigation path the command opens, after flags are
	// parsed. The dispatcher gates the command on it. "" means no gate.
	Route() string

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
