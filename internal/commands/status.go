package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/mutation"
	"tasktrack/internal/navigate"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&NextCmd{})
	Register(&PrevCmd{})
	Register(&DoneCmd{})
}

// NextCmd moves a task one status forward.
type NextCmd struct{}

func (c *NextCmd) Name() string                   { return "next" }
func (c *NextCmd) Aliases() []string              { return []string{"start"} }
func (c *NextCmd) Synopsis() string               { return "Move a task to its next status" }
func (c *NextCmd) Usage() string                  { return "tasktrack next <id>" }
func (c *NextCmd) NeedsService() bool             { return true }
func (c *NextCmd) Route() string                  { return navigate.AppTasks }
func (c *NextCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *NextCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runStep(ctx, env, args, (*mutation.Tasks).Advance, "last", out, errOut)
}

// PrevCmd moves a task one status back.
type PrevCmd struct{}

func (c *PrevCmd) Name() string                   { return "prev" }
func (c *PrevCmd) Aliases() []string              { return []string{"back"} }
func (c *PrevCmd) Synopsis() string               { return "Move a task to its previous status" }
func (c *PrevCmd) Usage() string                  { return "tasktrack prev <id>" }
func (c *PrevCmd) NeedsService() bool             { return true }
func (c *PrevCmd) Route() string                  { return navigate.AppTasks }
func (c *PrevCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrevCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runStep(ctx, env, args, (*mutation.Tasks).Regress, "first", out, errOut)
}

type stepFunc func(*mutation.Tasks, context.Context, int64) (service.Task, bool, error)

func runStep(ctx context.Context, env *Env, args []string, step stepFunc, end string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	task, moved, err := step(tasks, ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	if !moved {
		if !env.Config.Quiet {
			fmt.Fprintf(out, "task #%d is already at the %s status (%s)\n", task.ID, end, task.TrackingStatus.Label())
		}
		return exitcode.Success
	}

	if !env.Config.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string                   { return "done" }
func (c *DoneCmd) Aliases() []string              { return nil }
func (c *DoneCmd) Synopsis() string               { return "Mark a task completed" }
func (c *DoneCmd) Usage() string                  { return "tasktrack done <id>" }
func (c *DoneCmd) NeedsService() bool             { return true }
func (c *DoneCmd) Route() string                  { return navigate.AppTasks }
func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if _, err := tasks.TransitionStatus(ctx, id, service.StatusCompleted); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
