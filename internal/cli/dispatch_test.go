package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/backend"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate points the default config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range []string{"TODO_BACKEND", "TODO_DATA_DIR", "TODO_TIMEOUT", "TODO_STRICT_IDS", "STRICT_IDS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout.String())
	}
	if svc.Closed {
		t.Error("version must not open the store")
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsAndCloses(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
	if !svc.Closed {
		t.Error("expected store to be closed after the command")
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_BACKEND", "redis")
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !bytes.HasPrefix(stderr.Bytes(), []byte("error: config error: unknown backend")) {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("no such backend")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
}

func TestDispatcher_InitializeError(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.InitializeErr = service.ErrStorageUnavailable
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "x"}, &stdout, &stderr)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr.String() != "error: storage error: storage unavailable\n" {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	if len(svc.Tasks()) != 0 {
		t.Error("command must not run when the store fails to initialize")
	}
}

func TestDispatcher_CloseError(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.CloseErr = errors.New("close failed")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--quiet"}, &stdout, &stderr)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
}

func TestDispatcher_CommandFlagsAfterCommonFlags(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	id := svc.AddTask("Walk dog", false)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"done", "--quiet", "--id", "2"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if stdout.String() != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout.String())
	}
	for _, task := range svc.Tasks() {
		if task.Completed != (task.ID == id) {
			t.Errorf("unexpected completion state: %+v", task)
		}
	}
}

// End to end through the real backends.
func TestDispatcher_Backends(t *testing.T) {
	for _, name := range []string{config.BackendBlob, config.BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv("TODO_BACKEND", name)

			var logs bytes.Buffer
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return backend.New(cfg, logging.New(&logs, cfg.Debug))
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			run := func(args ...string) string {
				t.Helper()
				var stdout, stderr bytes.Buffer
				code := dispatcher.Run(context.Background(), args, &stdout, &stderr)
				if code != exitcode.Success {
					t.Fatalf("%v: exit code %d, stderr %q", args, code, stderr.String())
				}
				return stdout.String()
			}

			if got := run("list"); got != "no tasks\n" {
				t.Errorf("expected empty list, got %q", got)
			}
			run("add", "--quiet", "Buy", "milk")
			if got := run("add", "Walk dog"); got != "   1  [ ] Walk dog\n   2  [ ] Buy milk\n" {
				t.Errorf("unexpected list after add: %q", got)
			}
			if got := run("toggle", "--debug", "2"); got != "   1  [ ] Walk dog\n   2  [x] Buy milk\n" {
				t.Errorf("unexpected list after toggle: %q", got)
			}
			if got := run("rm", "1"); got != "   1  [x] Buy milk\n" {
				t.Errorf("unexpected list after rm: %q", got)
			}
			if got := run(); got != "   1  [x] Buy milk\n" {
				t.Errorf("unexpected list: %q", got)
			}

			if !bytes.Contains(logs.Bytes(), []byte("task toggled")) {
				t.Errorf("expected debug log for toggle, got %q", logs.String())
			}
			if bytes.Contains(logs.Bytes(), []byte("task deleted")) {
				t.Errorf("debug logs printed without --debug: %q", logs.String())
			}

			if _, err := os.Stat(filepath.Join(dir, config.AppName)); err != nil {
				t.Errorf("expected data under the config directory: %v", err)
			}
		})
	}
}
