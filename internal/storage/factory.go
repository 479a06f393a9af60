package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// BackendType selects a Store implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	RedisBackend  BackendType = "redis"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, RedisBackend:
		return true
	default:
		return false
	}
}

// BackendTypes lists every valid backend, for flag help and validation
// messages.
func BackendTypes() []string {
	return []string{MemoryBackend.String(), SQLiteBackend.String(), RedisBackend.String()}
}

// Config holds what Open needs for each backend.
type Config struct {
	Type BackendType

	SQLiteDBPath string

	Redis RedisOptions
}

// Validate checks the settings required by the selected backend.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid store backend: %q", c.Type)
	}
	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case RedisBackend:
		if c.Redis.Addr == "" {
			return fmt.Errorf("Redis address is required for redis backend")
		}
	}
	return nil
}

// Open builds the configured store.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLiteBackend:
		s, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "db_path", cfg.SQLiteDBPath)
		return s, nil
	case RedisBackend:
		s, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis store: %w", err)
		}
		logger.Info("Initialized Redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB, "prefix", cfg.Redis.Prefix)
		return s, nil
	default:
		logger.Info("Initialized memory store")
		return NewMemoryStore(), nil
	}
}
