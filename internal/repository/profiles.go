package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"showroom/internal/core"
	"showroom/internal/storage"
)

type ProfileRepository struct {
	*base
}

// Get returns ErrProfileNotFound when the visitor never registered.
func (r *ProfileRepository) Get(ctx context.Context, visitor string) (core.Profile, error) {
	raw, found, err := r.read(ctx, visitor, storage.BucketProfile)
	if err != nil {
		return core.Profile{}, err
	}
	if !found || raw == "" {
		return core.Profile{}, ErrProfileNotFound
	}
	var p core.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return core.Profile{}, fmt.Errorf("%s: %w: %v", storage.BucketProfile, ErrCorruptData, err)
	}
	return p, nil
}

// Save replaces the stored profile.
func (r *ProfileRepository) Save(ctx context.Context, visitor string, p core.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return r.write(ctx, visitor, storage.BucketProfile, string(data))
}

// Update applies fn to the stored profile under the visitor's lock.
func (r *ProfileRepository) Update(ctx context.Context, visitor string, fn func(*core.Profile) error) (core.Profile, error) {
	unlock := r.lock(visitor, storage.BucketProfile)
	defer unlock()

	p, err := r.Get(ctx, visitor)
	if err != nil {
		return core.Profile{}, err
	}
	if err := fn(&p); err != nil {
		return core.Profile{}, err
	}
	if err := r.Save(ctx, visitor, p); err != nil {
		return core.Profile{}, err
	}
	return p, nil
}
