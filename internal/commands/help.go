package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasktrack help" }
func (c *HelpCmd) NeedsService() bool { return false }
func (c *HelpCmd) Route() string      { return "" }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasktrack                                     List your tasks
  tasktrack tasks [--all] [--status <s>] [--search <text>] [--sort recent|title] [--page <n>]
  tasktrack show <id>
  tasktrack add [--description <text>] [--status <s>] <title...>
  tasktrack create [--description <text>] [--status <s>] <title...>
  tasktrack edit [--title <t>] [--description <d>] [--status <s>] <id>
  tasktrack next <id>                           TO_DO -> IN_PROGRESS -> COMPLETED
  tasktrack prev <id>
  tasktrack done <id>
  tasktrack rm [--force] <id>
  tasktrack browse [--all]                      Interactive browser
  tasktrack users [--search <text>] [--sort id|name|username] [--page <n>]   (admin)
  tasktrack user <id>                                                        (admin)
  tasktrack user-rm [--force] <id>                                           (admin)
  tasktrack profile [--name <full name>] [--username <username>]
  tasktrack passwd
  tasktrack whoami
  tasktrack login [--from <route>] <username>
  tasktrack register --name <full name> <username>
  tasktrack logout
  tasktrack help
  tasktrack version

Statuses: todo, doing, done (or TO_DO, IN_PROGRESS, COMPLETED, all)

Common flags:
  --config <dir>        Override config directory
  --quiet               Suppress informational output
  --debug               Print debug logs and request metrics to stderr
  --log-format <fmt>    Log format: text or json
  --no-log              Disable logging

Environment:
  TASKTRACK_API_BASE_URL, TASKTRACK_AUTH_PATH, TASKTRACK_PERSONS_PATH,
  TASKTRACK_TASKS_PATH, TASKTRACK_TIMEOUT, TASKTRACK_PASSWORD
`
