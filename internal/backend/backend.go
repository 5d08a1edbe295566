// Package backend builds the task store selected by configuration.
package backend

import (
	"fmt"

	"github.com/bool64/ctxd"

	"todo/internal/backend/blob"
	"todo/internal/backend/sqlite"
	"todo/internal/config"
	"todo/internal/taskstore"
)

// NewMedium returns the medium for cfg.Backend.
func NewMedium(cfg *config.Config) (taskstore.Medium, error) {
	switch cfg.Backend {
	case config.BackendBlob:
		return blob.New(blob.NewFileKV(cfg.BlobPath())), nil
	case config.BackendSQLite:
		return sqlite.New(cfg.DatabasePath()), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
	}
}

// New returns an uninitialized store over the configured medium.
func New(cfg *config.Config, logger ctxd.Logger) (*taskstore.Store, error) {
	medium, err := NewMedium(cfg)
	if err != nil {
		return nil, err
	}

	return taskstore.New(medium,
		taskstore.WithLogger(logger),
		taskstore.WithTimeout(cfg.Timeout),
		taskstore.WithStrictIDs(cfg.StrictIDs),
	), nil
}
