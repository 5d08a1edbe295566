// Package sqlite implements a task medium with one row per task in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"todo/internal/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	completed INTEGER DEFAULT 0
);`

// ErrClosed is returned when the database has not been opened.
var ErrClosed = errors.New("database is not open")

// Medium implements taskstore.Medium on a SQLite database file.
type Medium struct {
	path string
	db   *sql.DB
}

// New creates a Medium for the database at path. Nothing is opened until Open.
func New(path string) *Medium {
	return &Medium{path: path}
}

// Path returns the database file path.
func (m *Medium) Path() string {
	return m.path
}

// Open creates the parent directory, opens the database and creates the table.
func (m *Medium) Open(ctx context.Context) error {
	if m.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", m.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	m.db = db
	return nil
}

// Load returns every row, newest-first.
func (m *Medium) Load(ctx context.Context) ([]service.Task, error) {
	if m.db == nil {
		return nil, ErrClosed
	}

	rows, err := m.db.QueryContext(ctx, `SELECT id, text, completed FROM todos ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		var (
			t         service.Task
			completed sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Text, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		t.Completed = completed.Int64 != 0
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	return tasks, nil
}

// Insert adds a row and returns the task with its AUTOINCREMENT id.
func (m *Medium) Insert(ctx context.Context, text string) (service.Task, error) {
	if m.db == nil {
		return service.Task{}, ErrClosed
	}

	res, err := m.db.ExecContext(ctx, `INSERT INTO todos (text) VALUES (?)`, text)
	if err != nil {
		return service.Task{}, fmt.Errorf("failed to insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return service.Task{}, fmt.Errorf("failed to get todo id: %w", err)
	}

	return service.Task{ID: id, Text: text}, nil
}

// SetCompleted updates the completed column of id.
func (m *Medium) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if m.db == nil {
		return ErrClosed
	}

	value := 0
	if completed {
		value = 1
	}

	if _, err := m.db.ExecContext(ctx, `UPDATE todos SET completed = ? WHERE id = ?`, value, id); err != nil {
		return fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	return nil
}

// Delete removes the row with id.
func (m *Medium) Delete(ctx context.Context, id int64) error {
	if m.db == nil {
		return ErrClosed
	}

	if _, err := m.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	return nil
}

// Close closes the database.
func (m *Medium) Close() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
