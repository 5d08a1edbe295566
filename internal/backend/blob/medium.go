package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"todo/internal/service"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "@todos"

// record is the stored form of a task.
type record struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed flag   `json:"completed"`
}

// flag is written as 0 or 1 and read from 0, 1, true or false.
type flag bool

func (f flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*f = true
	case "0", "false", "null":
		*f = false
	default:
		return fmt.Errorf("invalid completed value: %s", data)
	}
	return nil
}

// Medium implements taskstore.Medium by rewriting the whole list on every change.
type Medium struct {
	kv  KV
	key string
	now func() time.Time
}

// Option configures a Medium.
type Option func(*Medium)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(m *Medium) {
		m.key = key
	}
}

// WithClock sets the time source used for new ids.
func WithClock(now func() time.Time) Option {
	return func(m *Medium) {
		m.now = now
	}
}

// New creates a Medium over kv.
func New(kv KV, opts ...Option) *Medium {
	m := &Medium{
		kv:  kv,
		key: DefaultKey,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open prepares the key-value store. A missing key is left missing.
func (m *Medium) Open(ctx context.Context) error {
	return m.kv.Prepare(ctx)
}

// Load returns the stored list, newest-first.
func (m *Medium) Load(ctx context.Context) ([]service.Task, error) {
	records, err := m.read(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]service.Task, len(records))
	for i, r := range records {
		tasks[i] = service.Task{ID: r.ID, Text: r.Text, Completed: bool(r.Completed)}
	}
	return tasks, nil
}

// Insert prepends a new task. Its id is the current time in milliseconds,
// bumped past the largest stored id so ids keep increasing.
func (m *Medium) Insert(ctx context.Context, text string) (service.Task, error) {
	records, err := m.read(ctx)
	if err != nil {
		return service.Task{}, err
	}

	id := m.now().UnixMilli()
	if len(records) > 0 && records[0].ID >= id {
		id = records[0].ID + 1
	}

	r := record{ID: id, Text: text}
	if err := m.write(ctx, append([]record{r}, records...)); err != nil {
		return service.Task{}, err
	}
	return service.Task{ID: id, Text: text}, nil
}

// SetCompleted sets the completed flag of id. Unknown ids are ignored.
func (m *Medium) SetCompleted(ctx context.Context, id int64, completed bool) error {
	records, err := m.read(ctx)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(records, func(r record) bool { return r.ID == id })
	if i < 0 {
		return nil
	}
	records[i].Completed = flag(completed)
	return m.write(ctx, records)
}

// Delete removes id. Unknown ids are ignored.
func (m *Medium) Delete(ctx context.Context, id int64) error {
	records, err := m.read(ctx)
	if err != nil {
		return err
	}

	n := len(records)
	records = slices.DeleteFunc(records, func(r record) bool { return r.ID == id })
	if len(records) == n {
		return nil
	}
	return m.write(ctx, records)
}

// Close is a no-op; FileKV holds no open handles.
func (m *Medium) Close() error {
	return nil
}

// read returns the stored records sorted newest-first.
func (m *Medium) read(ctx context.Context) ([]record, error) {
	data, err := m.kv.Get(ctx, m.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []record{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid %s document: %w", m.key, err)
	}
	if records == nil {
		records = []record{}
	}

	slices.SortStableFunc(records, func(a, b record) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return records, nil
}

func (m *Medium) write(ctx context.Context, records []record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", m.key, err)
	}
	return m.kv.Set(ctx, m.key, data)
}
