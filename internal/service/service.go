// Package service defines the task store contract the front-end depends on.
package service

import "context"

// Service defines the interface for task store operations.
// Every method that returns a list returns it newest-first, as a copy
// the caller may keep.
type Service interface {
	// Initialize prepares the durable medium and returns the current list.
	// No prior data is an empty list, not an error.
	Initialize(ctx context.Context) ([]Task, error)

	// List returns all tasks.
	List(ctx context.Context) ([]Task, error)

	// Create stores a new open task with the given text and returns the updated list.
	// Text that is empty after trimming is rejected with ErrInvalidInput.
	Create(ctx context.Context, text string) ([]Task, error)

	// ToggleCompletion flips the completed flag of the task with id.
	ToggleCompletion(ctx context.Context, id int64) ([]Task, error)

	// Delete removes the task with id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) ([]Task, error)

	// Close releases the medium. The service must be initialized again before reuse.
	Close() error
}
