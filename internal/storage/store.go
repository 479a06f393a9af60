// Package storage holds the string key-value stores that back every
// per-visitor collection: calculations, bookings, chat history, saved cars
// and the profile.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is a flat string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Bucket names one per-visitor collection.
type Bucket string

const (
	BucketCalculations Bucket = "financeCalculations"
	BucketBookings     Bucket = "testDriveBookings"
	BucketChatHistory  Bucket = "aiChatHistory"
	BucketSavedCars    Bucket = "savedCars"
	BucketProfile      Bucket = "userAccount"
)

var (
	ErrClosed       = errors.New("store is closed")
	ErrEmptyKey     = errors.New("empty key")
	ErrEmptyVisitor = errors.New("empty visitor id")
)

// Key namespaces a bucket under a visitor: visitor:<id>:<bucket>.
func Key(visitor string, bucket Bucket) (string, error) {
	visitor = strings.TrimSpace(visitor)
	if visitor == "" {
		return "", ErrEmptyVisitor
	}
	return fmt.Sprintf("visitor:%s:%s", visitor, bucket), nil
}
