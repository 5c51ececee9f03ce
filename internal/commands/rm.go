package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/mutation"
	"tasktrack/internal/navigate"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	force bool
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "tasktrack rm [--force] <id>" }
func (c *RmCmd) NeedsService() bool { return true }
func (c *RmCmd) Route() string      { return navigate.AppTasks }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := env.Service.GetTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !c.force {
		ok, err := newPrompter(env.In, errOut).confirm(fmt.Sprintf("delete task #%d %q?", task.ID, task.Title))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v (use --force to skip the prompt)\n", err)
			return exitcode.UserError
		}
		if !ok {
			fmt.Fprintln(errOut, "aborted")
			return exitcode.UserError
		}
	}

	tasks, err := mutation.NewTasks(mutation.TasksConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if err := tasks.Delete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
