// Package repository gives typed, per-visitor access to the collections kept
// in a storage.Store. Each collection is one JSON document under
// visitor:<id>:<bucket>; updates to the same document are serialized.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"showroom/internal/storage"
)

var (
	ErrCorruptData      = errors.New("stored data is corrupt")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrProfileNotFound  = errors.New("profile not found")
)

// ChatHistoryCapacity bounds the stored conversation; older messages drop
// first.
const ChatHistoryCapacity = 100

// Repositories bundles every repository over one store.
type Repositories struct {
	Calculations *CalculationRepository
	Bookings     *BookingRepository
	SavedCars    *SavedCarRepository
	ChatHistory  *ChatHistoryRepository
	Profiles     *ProfileRepository
}

func New(store storage.Store) *Repositories {
	b := &base{store: store, locks: newKeyedMutex()}
	return &Repositories{
		Calculations: &CalculationRepository{base: b, capacity: calculationCapacity},
		Bookings:     &BookingRepository{base: b},
		SavedCars:    &SavedCarRepository{base: b},
		ChatHistory:  &ChatHistoryRepository{base: b, capacity: ChatHistoryCapacity},
		Profiles:     &ProfileRepository{base: b},
	}
}

type base struct {
	store storage.Store
	locks *keyedMutex
}

func (b *base) read(ctx context.Context, visitor string, bucket storage.Bucket) (string, bool, error) {
	key, err := storage.Key(visitor, bucket)
	if err != nil {
		return "", false, err
	}
	v, found, err := b.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", bucket, err)
	}
	return v, found, nil
}

func (b *base) write(ctx context.Context, visitor string, bucket storage.Bucket, value string) error {
	key, err := storage.Key(visitor, bucket)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write %s: %w", bucket, err)
	}
	return nil
}

func (b *base) remove(ctx context.Context, visitor string, bucket storage.Bucket) error {
	key, err := storage.Key(visitor, bucket)
	if err != nil {
		return err
	}
	if err := b.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", bucket, err)
	}
	return nil
}

// lock serializes writers on one visitor's bucket.
func (b *base) lock(visitor string, bucket storage.Bucket) func() {
	return b.locks.Lock(visitor + "/" + string(bucket))
}

// readList decodes a JSON array bucket. A missing bucket is an empty list.
func readList[T any](ctx context.Context, b *base, visitor string, bucket storage.Bucket) ([]T, error) {
	raw, found, err := b.read(ctx, visitor, bucket)
	if err != nil || !found || raw == "" {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", bucket, ErrCorruptData, err)
	}
	return items, nil
}

func writeList[T any](ctx context.Context, b *base, visitor string, bucket storage.Bucket, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}
	return b.write(ctx, visitor, bucket, string(data))
}
