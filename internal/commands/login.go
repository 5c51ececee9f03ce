package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/mutation"
	"tasktrack/internal/navigate"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
// The password comes from TASKTRACK_PASSWORD or a prompt.
type LoginCmd struct {
	username string
	// from is the route a gated command was refused on.
	from string
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Sign in" }
func (c *LoginCmd) Usage() string      { return "tasktrack login [--from <route>] <username>" }
func (c *LoginCmd) NeedsService() bool { return true }
func (c *LoginCmd) Route() string      { return "" }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.from, "from", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	username := c.username
	if username == "" && len(args) > 0 {
		username = args[0]
		args = args[1:]
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if strings.TrimSpace(username) == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}

	// An existing session for the same user is kept.
	if env.Config.HasToken() && env.Session.EnsureSession(ctx) {
		if me := env.Session.Snapshot().User; me != nil && me.Username == username {
			if !env.Config.Quiet {
				fmt.Fprintf(out, "already logged in as %s\n", me.Username)
			}
			return exitcode.Success
		}
	}

	password := env.Config.Password()
	if password == "" {
		var err error
		password, err = newPrompter(env.In, errOut).secret("Password")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	creds := service.LoginPersonDto{Username: username, Password: password}
	if err := mutation.Validate(creds); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	p, err := env.Session.Login(ctx, creds)
	if err != nil {
		if isAuthError(err) {
			fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
			return exitcode.AuthError
		}
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		dest, label := navigate.AfterLogin(c.from, p.Role), "home"
		if dest != session.HomeByRole(p.Role) {
			label = "next"
		}
		fmt.Fprintf(out, "logged in as %s (%s), %s %s\n", p.Username, p.Role, label, dest)
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	fullName string
}

func (c *RegisterCmd) Name() string       { return "register" }
func (c *RegisterCmd) Aliases() []string  { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string   { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string      { return "tasktrack register --name <full name> <username>" }
func (c *RegisterCmd) NeedsService() bool { return true }
func (c *RegisterCmd) Route() string      { return "" }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.fullName, "name", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	details := service.CreatePersonDto{FullName: c.fullName, Username: args[0], Role: service.RoleUser}
	// Reject a bad name before asking for a password.
	if strings.TrimSpace(details.FullName) == "" {
		fmt.Fprintln(errOut, "error: fullName is required")
		return exitcode.UserError
	}

	password := env.Config.Password()
	if password == "" {
		p := newPrompter(env.In, errOut)
		var err error
		if password, err = p.secret("Password"); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		confirm, err := p.secret("Repeat password")
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if confirm != password {
			fmt.Fprintln(errOut, "error: passwords do not match")
			return exitcode.UserError
		}
	}
	details.Password = password

	if err := mutation.Validate(details); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	p, err := env.Session.Register(ctx, details)
	if err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "registered and logged in as %s\n", p.Username)
	}
	return exitcode.Success
}
