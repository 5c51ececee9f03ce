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
	Register(&ProfileCmd{})
	Register(&PasswdCmd{})
}

// ProfileCmd shows or edits the signed-in user's profile.
type ProfileCmd struct {
	fullName optionalString
	username optionalString
}

func (c *ProfileCmd) Name() string       { return "profile" }
func (c *ProfileCmd) Aliases() []string  { return nil }
func (c *ProfileCmd) Synopsis() string   { return "Show or change your name and username" }
func (c *ProfileCmd) Usage() string      { return "tasktrack profile [--name <full name>] [--username <username>]" }
func (c *ProfileCmd) NeedsService() bool { return true }
func (c *ProfileCmd) Route() string      { return navigate.AppSettings }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Var(&c.fullName, "name", "")
	fs.Var(&c.username, "username", "")
}

func (c *ProfileCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	me := env.Session.Snapshot().User
	if me == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: tasktrack login)")
		return exitcode.AuthError
	}

	if !c.fullName.set && !c.username.set {
		output.FormatPerson(out, *me)
		return exitcode.Success
	}

	persons, err := mutation.NewPersons(mutation.PersonsConfig{
		Service: env.Service,
		Session: env.Session,
		Logger:  env.Logger,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	updated, err := persons.PatchProfile(ctx, me.PersonID, service.PatchPersonProfileDto{
		FullName: c.fullName.ptr(),
		Username: c.username.ptr(),
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		output.FormatPerson(out, updated)
	}
	return exitcode.Success
}

// PasswdCmd changes the signed-in user's password.
type PasswdCmd struct{}

func (c *PasswdCmd) Name() string                   { return "passwd" }
func (c *PasswdCmd) Aliases() []string              { return []string{"password"} }
func (c *PasswdCmd) Synopsis() string               { return "Change your password" }
func (c *PasswdCmd) Usage() string                  { return "tasktrack passwd" }
func (c *PasswdCmd) NeedsService() bool             { return true }
func (c *PasswdCmd) Route() string                  { return navigate.AppSettings }
func (c *PasswdCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PasswdCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	me := env.Session.Snapshot().User
	if me == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: tasktrack login)")
		return exitcode.AuthError
	}

	p := newPrompter(env.In, errOut)
	var form mutation.PasswordChange
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Current password", &form.Current},
		{"New password", &form.New},
		{"Repeat new password", &form.Confirm},
	} {
		v, err := p.secret(field.label)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		*field.dst = v
	}

	persons, err := mutation.NewPersons(mutation.PersonsConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if err := persons.ChangePassword(ctx, me.PersonID, form); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "password changed")
	}
	return exitcode.Success
}
