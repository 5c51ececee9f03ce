package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/listview"
	"tasktrack/internal/output"
	"tasktrack/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command. It is also what `tasktrack` runs with no args.
type TasksCmd struct {
	all    bool
	status statusFlag
	search string
	sort   string
	page   int
}

func (c *TasksCmd) Name() string       { return "tasks" }
func (c *TasksCmd) Aliases() []string  { return []string{"ls", "list"} }
func (c *TasksCmd) Synopsis() string   { return "List tasks" }
func (c *TasksCmd) Usage() string      { return "tasktrack tasks [--all] [--status <s>] [--search <text>] [--sort recent|title] [--page <n>]" }
func (c *TasksCmd) NeedsService() bool { return true }
func (c *TasksCmd) Route() string      { return taskRoute(c.all) }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.status, "s", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "q", "", "")
	fs.StringVar(&c.sort, "sort", "recent", "")
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *TasksCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	sortKey, err := parseTaskSort(c.sort)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	view := listview.ViewMine
	if c.all {
		view = listview.ViewAll
	}
	src := listview.TaskSource{Service: env.Service, View: view}
	list, err := listview.New(listview.Config[service.Task]{Source: src, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	q := list.DefaultQuery().
		WithSearch(c.search).
		WithStatus(c.status.value()).
		WithSort(sortKey).
		WithPage(c.page - 1)
	if err := list.Load(ctx, q); err != nil {
		return reportError(errOut, err)
	}

	v := list.View()
	if len(v.Rows) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	if err := output.FormatTaskTable(out, v.Rows, c.all); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !env.Config.Quiet {
		output.FormatFooter(out, v.Page)
	}
	return exitcode.Success
}
