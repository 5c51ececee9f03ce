package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/listview"
	"tasktrack/internal/mutation"
	"tasktrack/internal/navigate"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields without a flag keep their value.
type EditCmd struct {
	title       optionalString
	description optionalString
	status      statusFlag
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title, description or status" }
func (c *EditCmd) Usage() string      { return "tasktrack edit [--title <t>] [--description <d>] [--status <s>] <id>" }
func (c *EditCmd) NeedsService() bool { return true }
func (c *EditCmd) Route() string      { return navigate.AppTasks }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.status, "status", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set && c.status.status == "" {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description or --status)")
		return exitcode.UserError
	}

	current, err := env.Service.GetTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	body := service.CreateTaskDto{
		Title:          current.Title,
		Description:    current.Description,
		TrackingStatus: current.TrackingStatus,
	}
	if c.title.set {
		body.Title = c.title.value
	}
	if c.description.set {
		body.Description = c.description.value
	}
	if s := c.status.status; s != "" && s != listview.StatusAll {
		body.TrackingStatus = s
	}

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	task, err := tasks.Update(ctx, id, body)
	if err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
