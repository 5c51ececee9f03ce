package commands_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"strings"
	"testing"

	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
	"tasktrack/internal/testutil"
)

// runCommand is a helper to run a command against a FakeService.
// stdin feeds prompts.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool, stdin string) (stdout, stderr string, code int) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), Quiet: quiet, API: config.DefaultAPI()}
	return runCommandWithConfig(t, cfg, cmd, svc, args, stdin)
}

func runCommandWithConfig(t *testing.T, cfg *config.Config, cmd commands.Command, svc *testutil.FakeService, args []string, stdin string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	ctx := context.Background()

	env := &commands.Env{Config: cfg, In: strings.NewReader(stdin)}
	if svc != nil {
		store, err := session.New(session.Config{Service: svc})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		if svc.SignedIn() != 0 {
			store.EnsureSession(ctx)
		}
		env.Service = svc
		env.Session = store
	}

	code = cmd.Run(ctx, env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// seed adds alice (id 1, user) and root (id 2, admin), and signs in as signIn.
func seed(signIn int64) *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddPerson(service.Person{FullName: "Alice Liddell", Username: "alice"}, "secret1")
	svc.AddPerson(service.Person{FullName: "Root", Username: "root", Role: service.RoleAdmin}, "toor12")
	if signIn != 0 {
		svc.SignIn(signIn)
	}
	return svc
}

func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tasktrack 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "tasktrack login", "--log-format"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestTasksCommand_MyTasks(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})
	svc.AddTask(service.Task{Title: "Buy eggs", UserID: 1, TrackingStatus: service.StatusInProgress})
	svc.AddTask(service.Task{Title: "Root's task", UserID: 2})

	stdout, stderr, code := runCommand(t, &commands.TasksCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "ID  STATUS       TITLE\n" +
		"4   In progress  Buy eggs\n" +
		"3   To do        Buy milk\n" +
		"page 1/1 · 2 items\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if svc.Calls("ListMyTasksPage") != 1 {
		t.Errorf("expected the my-tasks endpoint, calls=%d", svc.Calls("ListMyTasksPage"))
	}
}

func TestTasksCommand_QuietOmitsFooter(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, &commands.TasksCmd{}, svc, nil, true, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "page ") {
		t.Errorf("expected no footer in quiet mode, got %q", stdout)
	}
}

func TestTasksCommand_Empty(t *testing.T) {
	svc := seed(1)

	stdout, _, code := runCommand(t, &commands.TasksCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestTasksCommand_SearchFiltersMine(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})
	svc.AddTask(service.Task{Title: "Call mom", UserID: 1})

	cmd := &commands.TasksCmd{}
	stdout, _, code := runCommand(t, withFlags(t, cmd, "--search", "MILK"), svc, nil, true, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Buy milk") || strings.Contains(stdout, "Call mom") {
		t.Errorf("expected only the matching task, got %q", stdout)
	}
	if svc.Calls("SearchTasksPage") != 0 {
		t.Error("a regular user must not hit the admin search endpoint")
	}
}

func TestTasksCommand_AllIsAdminOnly(t *testing.T) {
	svc := seed(1)

	_, stderr, code := runCommand(t, withFlags(t, &commands.TasksCmd{}, "--all"), svc, nil, false, "")

	if code != exitcode.Forbidden {
		t.Errorf("expected exit code %d, got %d", exitcode.Forbidden, code)
	}
	if stderr != "error: forbidden: Access denied\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestTasksCommand_AllShowsOwner(t *testing.T) {
	svc := seed(2)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, withFlags(t, &commands.TasksCmd{}, "--all"), svc, nil, true, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "ID  STATUS  TITLE     OWNER\n3   To do   Buy milk  alice\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestTasksCommand_BackendError(t *testing.T) {
	svc := seed(1)
	svc.ListTasksErr = testutil.APIError(500, "boom")

	_, stderr, code := runCommand(t, &commands.TasksCmd{}, svc, nil, false, "")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestTasksCommand_UnexpectedArgument(t *testing.T) {
	svc := seed(1)

	_, stderr, code := runCommand(t, &commands.TasksCmd{}, svc, []string{"extra"}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand(t *testing.T) {
	svc := seed(1)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "#3 [To do] Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	task, ok := svc.Task(3)
	if !ok || task.UserID != 1 {
		t.Errorf("expected task 3 owned by alice, got %+v", task)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	svc := seed(1)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, nil, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("CreateTask") != 0 {
		t.Error("expected no API call")
	}
}

func TestAddCommand_BlankTitleIsRejectedLocally(t *testing.T) {
	svc := seed(1)

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"  "}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title is required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("CreateTask") != 0 {
		t.Error("expected no API call")
	}
}

func TestShowCommand(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"#3"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "#3 Buy milk\nStatus: To do\nOwner:  alice\n\n(no description)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	svc := seed(1)

	_, stderr, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"99"}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Task not found\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestShowCommand_OtherUsersTask(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "secret", UserID: 2})

	_, _, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.Forbidden {
		t.Errorf("expected exit code %d, got %d", exitcode.Forbidden, code)
	}
}

func TestEditCommand(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", Description: "2 litres", UserID: 1})

	cmd := withFlags(t, &commands.EditCmd{}, "--title", "Buy oat milk")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"3"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "#3 [To do] Buy oat milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	task, _ := svc.Task(3)
	if task.Description != "2 litres" {
		t.Errorf("expected description to be kept, got %q", task.Description)
	}
}

func TestEditCommand_NoChanges(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	_, _, code := runCommand(t, &commands.EditCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if svc.Calls("UpdateTask") != 0 {
		t.Error("expected no update")
	}
}

func TestNextCommand(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, &commands.NextCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "#3 [In progress] Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestNextCommand_AtLastStatus(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1, TrackingStatus: service.StatusCompleted})

	stdout, _, code := runCommand(t, &commands.NextCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "task #3 is already at the last status (Completed)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.Calls("UpdateTask") != 0 {
		t.Error("expected no update at the end of the sequence")
	}
}

func TestPrevCommand_AtFirstStatus(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, &commands.PrevCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "task #3 is already at the first status (To do)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDoneCommand(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"3"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if task, _ := svc.Task(3); task.TrackingStatus != service.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", task.TrackingStatus)
	}
}

func TestRmCommand_Confirmed(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"3"}, false, "y\n")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.TaskCount() != 0 {
		t.Error("expected the task to be deleted")
	}
}

func TestRmCommand_Declined(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"3"}, false, "n\n")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasSuffix(stderr, "aborted\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.TaskCount() != 1 {
		t.Error("expected the task to be kept")
	}
}

func TestRmCommand_ForceSkipsPrompt(t *testing.T) {
	svc := seed(1)
	svc.AddTask(service.Task{Title: "Buy milk", UserID: 1})

	_, stderr, code := runCommand(t, withFlags(t, &commands.RmCmd{}, "--force"), svc, []string{"3"}, true, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no prompt, got %q", stderr)
	}
}

func TestUsersCommand(t *testing.T) {
	svc := seed(2)

	stdout, stderr, code := runCommand(t, &commands.UsersCmd{}, svc, nil, true, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "ID  USERNAME  NAME           ROLE\n" +
		"2   root      Root           ADMIN\n" +
		"1   alice     Alice Liddell  USER\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestUsersCommand_Forbidden(t *testing.T) {
	svc := seed(1)

	_, _, code := runCommand(t, &commands.UsersCmd{}, svc, nil, false, "")

	if code != exitcode.Forbidden {
		t.Errorf("expected exit code %d, got %d", exitcode.Forbidden, code)
	}
}

func TestUserCommand(t *testing.T) {
	tests := map[string]struct {
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"shows the account": {
			args:       []string{"#1"},
			wantCode:   exitcode.Success,
			wantStdout: "#1 Alice Liddell\nusername: alice\nrole:     USER\n",
		},
		"unknown id": {
			args:       []string{"99"},
			wantCode:   exitcode.UserError,
			wantStderr: "error: Person not found\n",
		},
		"missing id": {
			wantCode:   exitcode.UserError,
			wantStderr: "error: person id required\n",
		},
		"bad id": {
			args:       []string{"alice"},
			wantCode:   exitcode.UserError,
			wantStderr: "error: invalid person reference: alice\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc := seed(2)
			stdout, stderr, code := runCommand(t, &commands.UserCmd{}, svc, tt.args, false, "")

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d (stderr %q)", tt.wantCode, code, stderr)
			}
			if stdout != tt.wantStdout {
				t.Errorf("expected stdout %q, got %q", tt.wantStdout, stdout)
			}
			if stderr != tt.wantStderr {
				t.Errorf("expected stderr %q, got %q", tt.wantStderr, stderr)
			}
		})
	}
}

func TestUserRmCommand_RefusesSelf(t *testing.T) {
	svc := seed(2)

	_, stderr, code := runCommand(t, withFlags(t, &commands.UserRmCmd{}, "--force"), svc, []string{"2"}, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: cannot delete the signed-in user\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestUserRmCommand(t *testing.T) {
	svc := seed(2)

	stdout, _, code := runCommand(t, withFlags(t, &commands.UserRmCmd{}, "--force"), svc, []string{"1"}, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.Calls("DeletePerson") != 1 {
		t.Error("expected one delete call")
	}
}

func TestProfileCommand_Show(t *testing.T) {
	svc := seed(1)

	stdout, _, code := runCommand(t, &commands.ProfileCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Alice Liddell (alice) #1 USER\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestProfileCommand_Rename(t *testing.T) {
	svc := seed(1)

	cmd := withFlags(t, &commands.ProfileCmd{}, "--name", "Alice L.")
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "Alice L. (alice) #1 USER\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestProfileCommand_BlankName(t *testing.T) {
	svc := seed(1)

	_, _, code := runCommand(t, withFlags(t, &commands.ProfileCmd{}, "--name", " "), svc, nil, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if svc.Calls("PatchProfile") != 0 {
		t.Error("expected no API call")
	}
}

func TestPasswdCommand(t *testing.T) {
	tests := map[string]struct {
		stdin      string
		wantCode   int
		wantStderr string
		wantCalls  int
	}{
		"changes the password": {
			stdin:     "secret1\nnewpass\nnewpass\n",
			wantCode:  exitcode.Success,
			wantCalls: 1,
		},
		"mismatched confirmation is rejected locally": {
			stdin:      "secret1\nnewpass\nother1\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: passwords do not match\n",
		},
		"short password is rejected locally": {
			stdin:      "secret1\nabc\nabc\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: newPassword must be at least 6 characters\n",
		},
		"wrong current password": {
			stdin:      "nope12\nnewpass\nnewpass\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: Current password is incorrect\n",
			wantCalls:  1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc := seed(1)

			_, stderr, code := runCommand(t, &commands.PasswdCmd{}, svc, nil, false, tt.stdin)

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d (stderr %q)", tt.wantCode, code, stderr)
			}
			if tt.wantStderr != "" && stderr != tt.wantStderr {
				t.Errorf("expected stderr %q, got %q", tt.wantStderr, stderr)
			}
			if got := svc.Calls("ChangePassword"); got != tt.wantCalls {
				t.Errorf("expected %d ChangePassword calls, got %d", tt.wantCalls, got)
			}
		})
	}
}

// withFlags parses args into cmd's flags the way the dispatcher does.
func withFlags[C commands.Command](t *testing.T, cmd C, args ...string) C {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}
	return cmd
}

func TestRegistry_EveryCommandIsDocumented(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HelpCmd{}, nil, nil, false, "")

	cmds := commands.DefaultRegistry.All()
	if len(cmds) < 20 {
		t.Fatalf("expected all commands registered, got %d", len(cmds))
	}
	for _, cmd := range cmds {
		if !strings.HasPrefix(cmd.Usage(), "tasktrack "+cmd.Name()) {
			t.Errorf("usage of %s should start with its name, got %q", cmd.Name(), cmd.Usage())
		}
		if !strings.Contains(stdout, "tasktrack "+cmd.Name()) {
			t.Errorf("help output does not mention %s", cmd.Name())
		}
		for _, alias := range cmd.Aliases() {
			found, ok := commands.DefaultRegistry.Find(alias)
			if !ok || found.Name() != cmd.Name() {
				t.Errorf("alias %s should resolve to %s", alias, cmd.Name())
			}
		}
	}
}

type stubCmd struct {
	name    string
	aliases []string
	route   string
	api     bool
}

func (c stubCmd) Name() string                 { return c.name }
func (c stubCmd) Aliases() []string            { return c.aliases }
func (c stubCmd) Synopsis() string             { return "" }
func (c stubCmd) Usage() string                { return "tasktrack " + c.name }
func (c stubCmd) NeedsService() bool           { return c.api }
func (c stubCmd) Route() string                { return c.route }
func (c stubCmd) RegisterFlags(*flag.FlagSet) {}
func (c stubCmd) Run(context.Context, *commands.Env, []string, io.Writer, io.Writer) int {
	return exitcode.Success
}

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		cmd     stubCmd
		wantErr string
	}{
		{"plain", stubCmd{name: "x", aliases: []string{"y"}}, ""},
		{"gated", stubCmd{name: "x", route: "/app/tasks", api: true}, ""},
		{"name taken", stubCmd{name: "taken"}, `name "taken" already taken`},
		{"alias taken", stubCmd{name: "x", aliases: []string{"t"}}, `name "t" already taken`},
		{"gated without service", stubCmd{name: "x", route: "/app/tasks"}, "needs a session"},
		{"unknown route", stubCmd{name: "x", route: "/nowhere", api: true}, "unknown route /nowhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := commands.NewRegistry()
			if err := r.Register(stubCmd{name: "taken", aliases: []string{"t"}}); err != nil {
				t.Fatal(err)
			}
			err := r.Register(tt.cmd)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if _, ok := r.Find(tt.cmd.name); !ok {
					t.Errorf("%s not found after register", tt.cmd.name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
			if tt.cmd.name != "taken" {
				if _, ok := r.Find(tt.cmd.name); ok {
					t.Errorf("%s registered despite error", tt.cmd.name)
				}
			}
		})
	}
}
