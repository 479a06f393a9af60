package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, found, err := s.Get(ctx, "k"); err != nil || !found || v != "v1" {
		t.Fatalf("Get = %q, %v, %v", v, found, err)
	}

	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "k"); v != "v2" {
		t.Fatalf("after overwrite got %q", v)
	}

	if err := s.Set(ctx, "empty", ""); err != nil {
		t.Fatalf("Set empty value: %v", err)
	}
	if v, found, _ := s.Get(ctx, "empty"); !found || v != "" {
		t.Fatalf("empty value should be stored, got %q found=%v", v, found)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("key still present after delete")
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("Delete of missing key: %v", err)
	}

	if err := s.Set(ctx, "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Set with empty key: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Get after close: %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Ping after close: %v", err)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			_ = s.Set(ctx, key, "v")
			_, _, _ = s.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	if s.Len() != 5 {
		t.Fatalf("len = %d, want 5", s.Len())
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "showroom.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	exerciseStore(t, s)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := s.Set(context.Background(), "persisted", "yes"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening runs migrations again and keeps data.
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if v, found, err := s2.Get(context.Background(), "persisted"); err != nil || !found || v != "yes" {
		t.Fatalf("after reopen got %q found=%v err=%v", v, found, err)
	}
}

func TestKey(t *testing.T) {
	k, err := Key("abc", BucketCalculations)
	if err != nil {
		t.Fatal(err)
	}
	if k != "visitor:abc:financeCalculations" {
		t.Fatalf("key = %q", k)
	}
	a, _ := Key("a", BucketBookings)
	b, _ := Key("b", BucketBookings)
	if a == b {
		t.Fatal("visitors must not share keys")
	}
	if _, err := Key("  ", BucketProfile); !errors.Is(err, ErrEmptyVisitor) {
		t.Fatalf("blank visitor: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"sqlite with path", Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"redis without addr", Config{Type: RedisBackend}, true},
		{"redis with addr", Config{Type: RedisBackend, Redis: RedisOptions{Addr: "localhost:6379"}}, false},
		{"unknown", Config{Type: "postgres"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Config{Type: MemoryBackend}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("got %T", s)
	}
}
