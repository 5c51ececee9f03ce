package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/listview"
	"tasktrack/internal/mutation"
	"tasktrack/internal/navigate"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	status      statusFlag
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return nil }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasktrack add [--description <text>] [--status <s>] <title...>" }
func (c *AddCmd) NeedsService() bool { return true }
func (c *AddCmd) Route() string      { return navigate.AppTasks }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	registerAddFlags(fs, &c.description, &c.status)
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, env, c.description, c.status.status, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	description string
	status      statusFlag
}

func (c *CreateCmd) Name() string       { return "create" }
func (c *CreateCmd) Aliases() []string  { return nil }
func (c *CreateCmd) Synopsis() string   { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string      { return "tasktrack create [--description <text>] [--status <s>] <title...>" }
func (c *CreateCmd) NeedsService() bool { return true }
func (c *CreateCmd) Route() string      { return navigate.AppTasks }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	registerAddFlags(fs, &c.description, &c.status)
}

func (c *CreateCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, env, c.description, c.status.status, args, out, errOut)
}

func registerAddFlags(fs *flag.FlagSet, description *string, status *statusFlag) {
	fs.StringVar(description, "description", "", "")
	fs.StringVar(description, "d", "", "")
	fs.Var(status, "status", "")
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, env *Env, description string, status service.Status, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if status == listview.StatusAll {
		status = ""
	}

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	task, err := tasks.Create(ctx, service.CreateTaskDto{
		Title:          strings.Join(args, " "),
		Description:    description,
		TrackingStatus: status,
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
