package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/navigate"
	"tasktrack/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	width int
}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return []string{"cat"} }
func (c *ShowCmd) Synopsis() string   { return "Show a task with its description" }
func (c *ShowCmd) Usage() string      { return "tasktrack show [--width <n>] <id>" }
func (c *ShowCmd) NeedsService() bool { return true }
func (c *ShowCmd) Route() string      { return navigate.AppTasks }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.width, "width", 80, "")
}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := env.Service.GetTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatTaskDetail(out, task, output.NewMarkdown(out, c.width))
	return exitcode.Success
}
