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
	Register(&UsersCmd{})
	Register(&UserCmd{})
	Register(&UserRmCmd{})
}

// UsersCmd lists accounts (admins).
type UsersCmd struct {
	search string
	sort   string
	page   int
}

func (c *UsersCmd) Name() string       { return "users" }
func (c *UsersCmd) Aliases() []string  { return nil }
func (c *UsersCmd) Synopsis() string   { return "List users (admin)" }
func (c *UsersCmd) Usage() string      { return "tasktrack users [--search <text>] [--sort id|name|username] [--page <n>]" }
func (c *UsersCmd) NeedsService() bool { return true }
func (c *UsersCmd) Route() string      { return navigate.AdminUsers }

func (c *UsersCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "q", "", "")
	fs.StringVar(&c.sort, "sort", "id", "")
	fs.IntVar(&c.page, "page", 1, "")
}

func (c *UsersCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	sortKey, err := parsePersonSort(c.sort)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	list, err := listview.New(listview.Config[service.Person]{
		Source: listview.PersonSource{Service: env.Service},
		Logger: env.Logger,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	q := list.DefaultQuery().WithSearch(c.search).WithSort(sortKey).WithPage(c.page - 1)
	if err := list.Load(ctx, q); err != nil {
		return reportError(errOut, err)
	}

	v := list.View()
	if len(v.Rows) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no users found")
		}
		return exitcode.Success
	}
	if err := output.FormatPersonTable(out, v.Rows); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !env.Config.Quiet {
		output.FormatFooter(out, v.Page)
	}
	return exitcode.Success
}

// UserCmd shows one account as the server has it now (admins).
type UserCmd struct{}

func (c *UserCmd) Name() string                   { return "user" }
func (c *UserCmd) Aliases() []string              { return []string{"show-user"} }
func (c *UserCmd) Synopsis() string               { return "Show a user (admin)" }
func (c *UserCmd) Usage() string                  { return "tasktrack user <id>" }
func (c *UserCmd) NeedsService() bool             { return true }
func (c *UserCmd) Route() string                  { return navigate.AdminUsers }
func (c *UserCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UserCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParsePersonRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	person, err := env.Service.GetPerson(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}
	output.FormatPersonDetail(out, person)
	return exitcode.Success
}

// UserRmCmd deletes an account (admins).
type UserRmCmd struct {
	force bool
}

func (c *UserRmCmd) Name() string       { return "user-rm" }
func (c *UserRmCmd) Aliases() []string  { return []string{"userdel"} }
func (c *UserRmCmd) Synopsis() string   { return "Delete a user (admin)" }
func (c *UserRmCmd) Usage() string      { return "tasktrack user-rm [--force] <id>" }
func (c *UserRmCmd) NeedsService() bool { return true }
func (c *UserRmCmd) Route() string      { return navigate.AdminUsers }

func (c *UserRmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *UserRmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, err := ParsePersonRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if me := env.Session.Snapshot().User; me != nil && me.PersonID == id {
		fmt.Fprintln(errOut, "error: cannot delete the signed-in user")
		return exitcode.UserError
	}

	person, err := env.Service.GetPerson(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !c.force {
		ok, err := newPrompter(env.In, errOut).confirm(fmt.Sprintf("delete user #%d %s?", person.PersonID, person.Username))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v (use --force to skip the prompt)\n", err)
			return exitcode.UserError
		}
		if !ok {
			fmt.Fprintln(errOut, "aborted")
			return exitcode.UserError
		}
	}

	persons, err := mutation.NewPersons(mutation.PersonsConfig{Service: env.Service, Logger: env.Logger})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if err := persons.Delete(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
