package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteHelp_ListsRegisteredCommands(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	writeHelp(&buf, r)

	expected := "  todo rm [--id] <n>       Delete a task (alias: delete)\n"
	if !strings.Contains(buf.String(), expected) {
		t.Errorf("expected %q in help, got:\n%s", expected, buf.String())
	}
	if strings.Contains(buf.String(), "todo toggle") {
		t.Error("help should only list commands from the given registry")
	}
}
