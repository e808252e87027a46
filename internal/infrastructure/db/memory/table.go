package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ayel/intranet/internal/core/ports"
)

// ErrDuplicateID is returned when Create is called with an id already stored.
var ErrDuplicateID = errors.New("duplicate id")

// Table is a thread-safe, insertion-ordered collection of records. Every read
// returns copies; clone deep-copies the reference fields of a record.
type Table[T ports.Entity] struct {
	mu       sync.RWMutex
	rows     []T
	index    map[string]int
	notFound error
	clone    func(T) T
}

// NewTable builds a table that reports notFound for unknown ids. clone may be
// nil for records without slices or pointers.
func NewTable[T ports.Entity](notFound error, clone func(T) T) *Table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Table[T]{index: make(map[string]int), notFound: notFound, clone: clone}
}

func (t *Table[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, len(t.rows))
	for i, r := range t.rows {
		out[i] = t.clone(r)
	}
	return out, nil
}

func (t *Table[T]) Get(_ context.Context, id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	return t.clone(t.rows[i]), nil
}

func (t *Table[T]) Create(_ context.Context, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.insertLocked(item)
}

func (t *Table[T]) insertLocked(item T) (T, error) {
	id := item.EntityID()
	if _, ok := t.index[id]; ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, t.clone(item))
	return t.clone(item), nil
}

func (t *Table[T]) Update(_ context.Context, item T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[item.EntityID()]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	t.rows[i] = t.clone(item)
	return t.clone(item), nil
}

// Mutate applies fn to the stored record under the write lock. The record is
// left untouched when fn fails.
func (t *Table[T]) Mutate(_ context.Context, id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	i, ok := t.index[id]
	if !ok {
		return zero, t.notFound
	}
	row := t.clone(t.rows[i])
	if err := fn(&row); err != nil {
		return zero, err
	}
	t.rows[i] = row
	return t.clone(row), nil
}

func (t *Table[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return t.notFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	delete(t.index, id)
	for j := i; j < len(t.rows); j++ {
		t.index[t.rows[j].EntityID()] = j
	}
	return nil
}

// Len reports the number of stored records.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
