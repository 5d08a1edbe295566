package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	writeHelp(out, DefaultRegistry)
	return exitcode.Success
}

// writeHelp prints one line per registered command followed by the flags
// and settings shared by all of them.
func writeHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-24s %s\n", "todo", "Same as todo list")
	for _, cmd := range r.All() {
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-24s %s\n", cmd.Usage(), line)
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
<n> is the number shown by list, or the task id with --id.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Settings (config.yaml in the config directory, or TODO_* environment):
  backend      blob | sqlite            (TODO_BACKEND, default blob)
  data_dir     where tasks are stored   (TODO_DATA_DIR, default config dir)
  timeout      per-operation timeout    (TODO_TIMEOUT, default 5s, 0 disables)
  strict_ids   fail on unknown task ids (TODO_STRICT_IDS, default false)
`
