package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parkease/parking-console/internal/core/domain"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	session := domain.Session{
		User:  domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin},
		Token: "tok123",
	}
	if err := s.Save(ctx, session); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded == nil || loaded.Token != "tok123" || loaded.User.Username != "alice" {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %o, want 600", perm)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := tempStore(t)

	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil session, got %+v", loaded)
	}
}

func TestFileStore_CorruptRecordFailsSoft(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	loaded, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt record must not propagate an error, got %v", err)
	}
	if loaded != nil {
		t.Fatalf("corrupt record must read as absent, got %+v", loaded)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, domain.Session{User: domain.User{ID: 1}, Token: "tok"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second Clear must be a no-op, got %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil || loaded != nil {
		t.Fatalf("expected empty store after clear, got %+v, %v", loaded, err)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := domain.Session{User: domain.User{ID: 1, Username: "alice"}, Token: "tok"}
	if err := s.Save(ctx, original); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, _ := s.Load(ctx)
	loaded.Token = "mutated"

	again, _ := s.Load(ctx)
	if again.Token != "tok" {
		t.Fatalf("store leaked internal state: %+v", again)
	}
}
