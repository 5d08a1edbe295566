// Package service defines the task store contract the front-end depends on.
package service

// Task represents a single task item.
type Task struct {
	ID        int64
	Text      string
	Completed bool
}
