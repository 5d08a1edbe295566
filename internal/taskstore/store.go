// Package taskstore implements service.Service on top of a durable Medium.
//
// The store keeps a snapshot of the task list that only changes after the
// medium has accepted a write, so a failed write never leaks into what
// callers see. All operations are serialized on one mutex.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bool64/ctxd"

	"todo/internal/service"
)

// Medium is the durable storage behind a Store.
// Load must return tasks newest-first.
type Medium interface {
	// Open creates the storage structure if it does not exist yet.
	Open(ctx context.Context) error
	Load(ctx context.Context) ([]service.Task, error)
	// Insert persists a new open task and returns it with its assigned id.
	Insert(ctx context.Context, text string) (service.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Store implements service.Service.
type Store struct {
	medium  Medium
	logger  ctxd.Logger
	timeout time.Duration
	strict  bool

	mu    sync.Mutex
	ready bool
	tasks []service.Task // newest-first, mirrors the last successful write
}

var _ service.Service = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l ctxd.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds every medium call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithStrictIDs makes ToggleCompletion fail with service.ErrNotFound
// for unknown ids instead of doing nothing.
func WithStrictIDs(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// New creates an uninitialized store over m.
func New(m Medium, opts ...Option) *Store {
	s := &Store{
		medium: m,
		logger: ctxd.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize opens the medium and loads the current list.
// Calling it on a ready store reloads the list.
func (s *Store) Initialize(ctx context.Context) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.medium.Open(opCtx); err != nil {
		return nil, s.fail(ctx, "initialize", classify(err, service.ErrStorageUnavailable))
	}

	tasks, err := s.medium.Load(opCtx)
	if err != nil {
		return nil, s.fail(ctx, "initialize", classify(err, service.ErrStorageReadFailed))
	}

	s.tasks = tasks
	s.ready = true
	s.logger.Debug(ctx, "task store ready", "tasks", len(tasks))

	return s.snapshot(), nil
}

// List re-reads the medium and returns the full list.
func (s *Store) List(ctx context.Context) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, s.fail(ctx, "list", service.ErrNotInitialized)
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	tasks, err := s.medium.Load(opCtx)
	if err != nil {
		return nil, s.fail(ctx, "list", classify(err, service.ErrStorageReadFailed))
	}

	s.tasks = tasks
	return s.snapshot(), nil
}

// Create persists a new open task and returns the updated list.
func (s *Store) Create(ctx context.Context, text string) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, s.fail(ctx, "create", service.ErrNotInitialized)
	}

	if strings.TrimSpace(text) == "" {
		return nil, s.fail(ctx, "create", fmt.Errorf("%w: text is empty", service.ErrInvalidInput))
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.medium.Insert(opCtx, text)
	if err != nil {
		return nil, s.fail(ctx, "create", classify(err, service.ErrStorageWriteFailed))
	}

	tasks := make([]service.Task, 0, len(s.tasks)+1)
	tasks = append(tasks, t)
	s.tasks = append(tasks, s.tasks...)
	s.logger.Debug(ctx, "task created", "id", t.ID)

	return s.snapshot(), nil
}

// ToggleCompletion flips the completed flag of the task with id and
// returns the updated list. An unknown id leaves the list unchanged unless
// the store is strict.
func (s *Store) ToggleCompletion(ctx context.Context, id int64) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, s.fail(ctx, "toggle", service.ErrNotInitialized)
	}

	i := s.indexOf(id)
	if i < 0 {
		if s.strict {
			return nil, s.fail(ctx, "toggle", fmt.Errorf("%w: %d", service.ErrNotFound, id))
		}
		s.logger.Debug(ctx, "toggle of unknown task ignored", "id", id)
		return s.snapshot(), nil
	}

	completed := !s.tasks[i].Completed

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.medium.SetCompleted(opCtx, id, completed); err != nil {
		return nil, s.fail(ctx, "toggle", classify(err, service.ErrStorageWriteFailed), "id", id)
	}

	s.tasks[i].Completed = completed
	s.logger.Debug(ctx, "task toggled", "id", id, "completed", completed)

	return s.snapshot(), nil
}

// Delete removes the task with id and returns the updated list.
// Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, s.fail(ctx, "delete", service.ErrNotInitialized)
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug(ctx, "delete of unknown task ignored", "id", id)
		return s.snapshot(), nil
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.medium.Delete(opCtx, id); err != nil {
		return nil, s.fail(ctx, "delete", classify(err, service.ErrStorageWriteFailed), "id", id)
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.logger.Debug(ctx, "task deleted", "id", id)

	return s.snapshot(), nil
}

// Close releases the medium and returns the store to the uninitialized state.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ready = false
	s.tasks = nil
	return s.medium.Close()
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) fail(ctx context.Context, op string, err error, keysAndValues ...interface{}) error {
	err = ctxd.WrapError(ctx, err, op, keysAndValues...)
	s.logger.Error(ctx, "task store operation failed", append([]interface{}{"op", op, "error", err}, keysAndValues...)...)
	return err
}

// classify wraps a medium error with kind, or with ErrStorageTimeout when
// the operation ran out of time.
func classify(err error, kind error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = service.ErrStorageTimeout
	}
	return fmt.Errorf("%w: %w", kind, err)
}
