package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/navigate"
	"tasktrack/internal/output"
	"tasktrack/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// sessionExpirer is implemented by services that know when the session ends.
type sessionExpirer interface {
	SessionExpiry() (time.Time, bool)
}

// WhoamiCmd prints the signed-in user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string                   { return "whoami" }
func (c *WhoamiCmd) Aliases() []string              { return []string{"me"} }
func (c *WhoamiCmd) Synopsis() string               { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string                  { return "tasktrack whoami" }
func (c *WhoamiCmd) NeedsService() bool             { return true }
func (c *WhoamiCmd) Route() string                  { return navigate.AppSettings }
func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	me := env.Session.Snapshot().User
	if me == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: tasktrack login)")
		return exitcode.AuthError
	}

	output.FormatPerson(out, *me)
	if env.Config.Quiet {
		return exitcode.Success
	}
	fmt.Fprintf(out, "home: %s\n", session.HomeByRole(me.Role))
	if exp, ok := env.Service.(sessionExpirer); ok {
		if t, ok := exp.SessionExpiry(); ok {
			fmt.Fprintf(out, "session expires: %s\n", t.Local().Format(time.RFC1123))
		}
	}
	return exitcode.Success
}
