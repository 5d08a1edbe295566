package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	byID bool
}

// SetByID makes the reference a task id (for testing).
func (c *ToggleCmd) SetByID(byID bool) {
	c.byID = byID
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed or open again" }
func (c *ToggleCmd) Usage() string     { return "todo toggle [--id] <n>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, c.byID)
	if err != nil {
		return reportRefError(errOut, err)
	}

	id, err := resolveTaskID(ctx, svc, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	tasks, err := svc.ToggleCompletion(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTasks(out, tasks, c.byID, false)
	}
	return exitcode.Success
}
