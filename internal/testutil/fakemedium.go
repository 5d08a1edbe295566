package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"todo/internal/service"
)

// ErrInjected is a convenient error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeMedium is an in-memory taskstore.Medium with failure injection.
// Tasks are kept oldest-first and returned newest-first.
type FakeMedium struct {
	mu     sync.Mutex
	tasks  []service.Task
	lastID int64

	// Error injection for testing
	OpenErr   error
	LoadErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error
	CloseErr  error

	// Delay blocks every call until it elapses or the context is done.
	Delay time.Duration

	Opened bool
	Closed bool
	Writes int
}

// NewFakeMedium creates an empty FakeMedium.
func NewFakeMedium() *FakeMedium {
	return &FakeMedium{}
}

// Seed appends a task as if it had been stored earlier.
func (f *FakeMedium) Seed(text string, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID++
	f.tasks = append(f.tasks, service.Task{ID: f.lastID, Text: text, Completed: completed})
	return f.lastID
}

// Open implements taskstore.Medium.
func (f *FakeMedium) Open(ctx context.Context) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Opened = true
	f.Closed = false
	return nil
}

// Load implements taskstore.Medium.
func (f *FakeMedium) Load(ctx context.Context) ([]service.Task, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]service.Task, 0, len(f.tasks))
	for i := len(f.tasks) - 1; i >= 0; i-- {
		result = append(result, f.tasks[i])
	}
	return result, nil
}

// Insert implements taskstore.Medium.
func (f *FakeMedium) Insert(ctx context.Context, text string) (service.Task, error) {
	if err := f.wait(ctx); err != nil {
		return service.Task{}, err
	}
	if f.InsertErr != nil {
		return service.Task{}, f.InsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastID++
	t := service.Task{ID: f.lastID, Text: text}
	f.tasks = append(f.tasks, t)
	f.Writes++
	return t, nil
}

// SetCompleted implements taskstore.Medium.
func (f *FakeMedium) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
		}
	}
	f.Writes++
	return nil
}

// Delete implements taskstore.Medium.
func (f *FakeMedium) Delete(ctx context.Context, id int64) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	f.Writes++
	return nil
}

// Close implements taskstore.Medium.
func (f *FakeMedium) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return f.CloseErr
}

func (f *FakeMedium) wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
