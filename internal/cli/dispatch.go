package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/log"
	"tasktrack/internal/navigate"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "tasks"

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, logger log.Logger) (service.Service, error)

// Options are the flags every command accepts.
type Options struct {
	ConfigDir string
	Quiet     bool
	Debug     bool
	LogFormat string
	NoLog     bool
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	in       io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		in:       os.Stdin,
	}
}

// SetInput replaces stdin for prompts.
func (d *Dispatcher) SetInput(in io.Reader) {
	d.in = in
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list my tasks
	if len(args) == 0 {
		return d.dispatch(ctx, DefaultCommand, nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
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
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var opts Options
	fs.StringVar(&opts.ConfigDir, "config", "", "")
	fs.BoolVar(&opts.Quiet, "quiet", false, "")
	fs.BoolVar(&opts.Debug, "debug", false, "")
	fs.StringVar(&opts.LogFormat, "log-format", "text", "")
	fs.BoolVar(&opts.NoLog, "no-log", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	logger, err := NewLogger(opts, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	logger = logger.WithValues(log.Kv{"cmd": cmd.Name()})

	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = opts.Quiet
	cfg.Debug = opts.Debug

	env := &commands.Env{Config: cfg, Logger: logger, In: d.in}
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		svc, err := d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
		store, err := session.New(session.Config{Service: svc, Logger: logger})
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.BackendError
		}
		env.Service = svc
		env.Session = store

		if code, ok := gate(ctx, store, cmd.Route(), errOut); !ok {
			return code
		}
	}

	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// gate resolves the session and checks the command's route against it.
func gate(ctx context.Context, store *session.Store, route string, errOut io.Writer) (int, bool) {
	if route == "" {
		return exitcode.Success, true
	}
	dec := navigate.Resolve(ctx, store, route)
	switch {
	case dec.Outcome == navigate.Allow:
		return exitcode.Success, true
	case dec.Outcome == navigate.Redirect && dec.To == navigate.Forbidden:
		fmt.Fprintf(errOut, "error: forbidden: %s is for %s accounts\n", route, service.RoleAdmin)
		return exitcode.Forbidden, false
	}
	fmt.Fprintf(errOut, "error: not logged in (run: tasktrack login --from %s <username>)\n", dec.From)
	return exitcode.AuthError, false
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagPart := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagPart
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
