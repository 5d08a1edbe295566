// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task // newest-first
	lastID int64
	ready  bool

	// Error injection for testing
	InitializeErr error
	ListErr       error
	CreateErr     error
	ToggleErr     error
	DeleteErr     error
	CloseErr      error

	Closed bool
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task as the newest entry and returns its id.
func (f *FakeService) AddTask(text string, completed bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID++
	f.tasks = append([]service.Task{{ID: f.lastID, Text: text, Completed: completed}}, f.tasks...)
	return f.lastID
}

// Tasks returns the current tasks without going through the Service methods.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.copyTasks()
}

// Initialize implements service.Service.
func (f *FakeService) Initialize(ctx context.Context) ([]service.Task, error) {
	if f.InitializeErr != nil {
		return nil, f.InitializeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = true
	return f.copyTasks(), nil
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.copyTasks(), nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, text string) ([]service.Task, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", service.ErrInvalidInput)
	}
	f.AddTask(text, false)
	return f.Tasks(), nil
}

// ToggleCompletion implements service.Service.
func (f *FakeService) ToggleCompletion(ctx context.Context, id int64) ([]service.Task, error) {
	if f.ToggleErr != nil {
		return nil, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
		}
	}
	return f.copyTasks(), nil
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id int64) ([]service.Task, error) {
	if f.DeleteErr != nil {
		return nil, f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return f.copyTasks(), nil
}

// Close implements service.Service.
func (f *FakeService) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = false
	f.Closed = true
	return f.CloseErr
}

func (f *FakeService) copyTasks() []service.Task {
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}
