package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/listview"
	"tasktrack/internal/tui"
)

func init() {
	Register(&BrowseCmd{})
}

// BrowseCmd opens the interactive task browser.
type BrowseCmd struct {
	all bool
}

func (c *BrowseCmd) Name() string       { return "browse" }
func (c *BrowseCmd) Aliases() []string  { return []string{"ui"} }
func (c *BrowseCmd) Synopsis() string   { return "Browse and edit tasks interactively" }
func (c *BrowseCmd) Usage() string      { return "tasktrack browse [--all]" }
func (c *BrowseCmd) NeedsService() bool { return true }
func (c *BrowseCmd) Route() string      { return taskRoute(c.all) }

func (c *BrowseCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *BrowseCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	view := listview.ViewMine
	if c.all {
		view = listview.ViewAll
	}
	me := env.Session.Snapshot().User
	err := tui.Run(ctx, tui.Config{
		Service: env.Service,
		Admin:   me != nil && me.IsAdmin(),
		View:    view,
		Logger:  env.Logger,
	})
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
