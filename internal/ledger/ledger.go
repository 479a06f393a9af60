// Package ledger provides a bounded, most-recent-first list of entries.
//
// A Ledger keeps at most Cap entries. Push inserts at the head and drops
// whatever falls past the capacity, so eviction is strictly by insertion
// order and never depends on the entries themselves.
package ledger

import (
	"encoding/json"
	"fmt"
)

// DefaultCapacity is the number of recent calculations a visitor keeps.
const DefaultCapacity = 10

// Ledger is not safe for concurrent use; callers that share one serialize
// access themselves (the repositories do this per visitor).
type Ledger[T any] struct {
	items    []T
	capacity int
}

// New returns an empty ledger. A non-positive capacity falls back to
// DefaultCapacity.
func New[T any](capacity int) *Ledger[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger[T]{capacity: capacity, items: make([]T, 0, capacity)}
}

// From builds a ledger from entries already ordered newest first, keeping the
// first capacity of them.
func From[T any](capacity int, items []T) *Ledger[T] {
	l := New[T](capacity)
	if len(items) > l.capacity {
		items = items[:l.capacity]
	}
	l.items = append(l.items, items...)
	return l
}

// Push inserts item at the head and evicts the oldest entries beyond capacity.
// It returns the evicted entries, oldest last.
func (l *Ledger[T]) Push(item T) []T {
	l.items = append(l.items, item)
	copy(l.items[1:], l.items[:len(l.items)-1])
	l.items[0] = item

	if len(l.items) <= l.capacity {
		return nil
	}
	evicted := make([]T, len(l.items)-l.capacity)
	copy(evicted, l.items[l.capacity:])
	clear(l.items[l.capacity:])
	l.items = l.items[:l.capacity]
	return evicted
}

// Items returns a copy of the entries, newest first.
func (l *Ledger[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger[T]) Len() int { return len(l.items) }

func (l *Ledger[T]) Cap() int { return l.capacity }

// Marshal encodes the entries as a JSON array, newest first. An empty ledger
// encodes as "[]".
func (l *Ledger[T]) Marshal() (string, error) {
	b, err := json.Marshal(l.Items())
	if err != nil {
		return "", fmt.Errorf("marshal ledger: %w", err)
	}
	return string(b), nil
}

// Unmarshal decodes a JSON array produced by Marshal into a ledger bounded by
// capacity. An empty string yields an empty ledger.
func Unmarshal[T any](capacity int, data string) (*Ledger[T], error) {
	if data == "" {
		return New[T](capacity), nil
	}
	var items []T
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal ledger: %w", err)
	}
	return From(capacity, items), nil
}
