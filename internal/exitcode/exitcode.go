// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown task).
	UserError = 1

	// ConfigError indicates an invalid config file or environment.
	ConfigError = 2

	// StorageError indicates the durable medium failed or timed out.
	StorageError = 3
)
