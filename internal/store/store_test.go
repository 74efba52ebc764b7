package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "user", `{"name":"Ana"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"name":"Ana"}` {
		t.Errorf("Get = %q", got)
	}

	if err := s.Set(ctx, "user", `{"name":"Bo"}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if got, _ := s.Get(ctx, "user"); got != `{"name":"Bo"}` {
		t.Errorf("Get after overwrite = %q", got)
	}

	for _, k := range []string{"water_intake_2025-06-02", "water_intake_2025-06-01", "water_entries_2025-06-01", "waterXintake_1"} {
		if err := s.Set(ctx, k, "{}"); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	keys, err := s.Keys(ctx, "water_intake_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{"water_intake_2025-06-01", "water_intake_2025-06-02"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}

	if err := s.Delete(ctx, "water_intake_2025-06-01"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
	if _, err := s.Get(ctx, "water_intake_2025-06-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted key still readable: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Get(ctx, "user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Clear: err = %v, want ErrNotFound", err)
	}
	keys, _ = s.Keys(ctx, "")
	if len(keys) != 0 {
		t.Errorf("Keys after Clear = %v, want none", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "truvida.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()
	exerciseStore(t, s)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truvida.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "steps_data_2025-06-01", `{"steps":42}`); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "steps_data_2025-06-01")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != `{"steps":42}` {
		t.Errorf("Get = %q", got)
	}
	keys, err := s.Keys(ctx, "")
	if err != nil || len(keys) != 1 {
		t.Errorf("Keys = %v, %v; want one key", keys, err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TRUVIDA_TEST_REDIS")
	if addr == "" {
		t.Skip("TRUVIDA_TEST_REDIS not set")
	}
	s, err := OpenRedis(context.Background(), addr, "", 0, "truvida-test:")
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	defer func() { _ = s.Close() }()
	_ = s.Clear(context.Background())
	exerciseStore(t, s)
}

func TestRedisMatchEscapesPrefix(t *testing.T) {
	r := &Redis{prefix: "team[1]*:"}
	if got, want := r.match(""), `team\[1\]\*:*`; got != want {
		t.Errorf("match(\"\") = %q, want %q", got, want)
	}
	if got, want := r.match("water_?"), `team\[1\]\*:water_\?*`; got != want {
		t.Errorf("match(water_?) = %q, want %q", got, want)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	s, err := Open(context.Background(), Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Open memory returned %T", s)
	}
}
