package commands_test

import (
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
	"tasktrack/internal/testutil"
)

func TestLoginCommand(t *testing.T) {
	svc := seed(0)

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"alice"}, false, "secret1\n")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "logged in as alice (USER), home /app\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.SignedIn() != 1 {
		t.Errorf("expected alice to be signed in, got %d", svc.SignedIn())
	}
}

func TestLoginCommand_PasswordFromEnvironment(t *testing.T) {
	t.Setenv(config.EnvPassword, "toor12")
	svc := seed(0)

	stdout, _, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"root"}, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "logged in as root (ADMIN), home /admin\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestLoginCommand_ContinuesAtBlockedRoute(t *testing.T) {
	tests := map[string]struct {
		from   string
		stdout string
	}{
		"blocked route":         {from: "/app/settings", stdout: "logged in as alice (USER), next /app/settings\n"},
		"login is not a target": {from: "/login", stdout: "logged in as alice (USER), home /app\n"},
		"no route":              {from: "", stdout: "logged in as alice (USER), home /app\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := withFlags(t, &commands.LoginCmd{}, "--from", tt.from)
			stdout, stderr, code := runCommand(t, cmd, seed(0), []string{"alice"}, false, "secret1\n")

			if code != exitcode.Success {
				t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("expected %q, got %q", tt.stdout, stdout)
			}
		})
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	svc := seed(0)

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"alice"}, false, "wrong\n")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Invalid credentials\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestLoginCommand_NoUsername(t *testing.T) {
	svc := seed(0)

	_, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, nil, false, "")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: username required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("Login") != 0 {
		t.Error("expected no API call")
	}
}

func TestLoginCommand_EmptyPassword(t *testing.T) {
	svc := seed(0)

	_, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"alice"}, false, "\n")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: password is required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("Login") != 0 {
		t.Error("expected no API call")
	}
}

func TestRegisterCommand(t *testing.T) {
	svc := seed(0)

	cmd := withFlags(t, &commands.RegisterCmd{}, "--name", "Bob Builder")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"bob"}, false, "hunter2\nhunter2\n")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "registered and logged in as bob\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.SignedIn() == 0 {
		t.Error("expected the new account to be signed in")
	}
}

func TestRegisterCommand_Rejected(t *testing.T) {
	tests := map[string]struct {
		flags      []string
		args       []string
		stdin      string
		wantCode   int
		wantStderr string
	}{
		"missing name": {
			args:       []string{"bob"},
			stdin:      "hunter2\nhunter2\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: fullName is required\n",
		},
		"mismatched passwords": {
			flags:      []string{"--name", "Bob"},
			args:       []string{"bob"},
			stdin:      "hunter2\nhunter3\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: passwords do not match\n",
		},
		"short password": {
			flags:      []string{"--name", "Bob"},
			args:       []string{"bob"},
			stdin:      "abc\nabc\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: password must be at least 6 characters\n",
		},
		"username taken": {
			flags:      []string{"--name", "Alice Two"},
			args:       []string{"alice"},
			stdin:      "hunter2\nhunter2\n",
			wantCode:   exitcode.UserError,
			wantStderr: "error: Username already exists\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc := seed(0)

			cmd := withFlags(t, &commands.RegisterCmd{}, tt.flags...)
			_, stderr, code := runCommand(t, cmd, svc, tt.args, false, tt.stdin)

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.HasSuffix(stderr, tt.wantStderr) {
				t.Errorf("expected stderr ending in %q, got %q", tt.wantStderr, stderr)
			}
			if svc.SignedIn() != 0 {
				t.Error("expected nobody signed in")
			}
		})
	}
}

// runWithToken runs cmd with a stored token in the config dir.
func runWithToken(t *testing.T, cmd commands.Command, svc *testutil.FakeService) (cfg *config.Config, stdout, stderr string, code int) {
	t.Helper()
	cfg = &config.Config{Dir: t.TempDir(), API: config.DefaultAPI()}
	if err := cfg.Tokens().Save(&oauth2.Token{AccessToken: "abc"}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
	stdout, stderr, code = runCommandWithConfig(t, cfg, cmd, svc, nil, "")
	return cfg, stdout, stderr, code
}

func TestLogoutCommand(t *testing.T) {
	svc := seed(1)

	cfg, stdout, stderr, code := runWithToken(t, &commands.LogoutCmd{}, svc)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if cfg.HasToken() {
		t.Error("expected the token to be removed")
	}
	if svc.SignedIn() != 0 {
		t.Error("expected the server session to end")
	}
}

func TestLogoutCommand_ServerErrorStillSignsOut(t *testing.T) {
	svc := seed(1)
	svc.LogoutErr = testutil.APIError(500, "boom")

	cfg, _, stderr, code := runWithToken(t, &commands.LogoutCmd{}, svc)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "warning: server logout failed: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if cfg.HasToken() {
		t.Error("expected the token to be removed")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	svc := seed(0)

	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.Calls("Logout") != 0 {
		t.Error("expected no API call")
	}
}

func TestWhoamiCommand(t *testing.T) {
	svc := seed(2)

	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false, "")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "Root (root) #2 ADMIN\nhome: /admin\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestWhoamiCommand_SignedOut(t *testing.T) {
	svc := seed(0)

	_, stderr, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false, "")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: tasktrack login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestWhoamiCommand_MeFailure(t *testing.T) {
	svc := seed(1)
	svc.MeErr = testutil.APIError(500, "boom")

	_, _, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false, "")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}
