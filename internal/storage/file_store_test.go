package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", store.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestFileStore_SetAndGet(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	value := []byte(`[{"id":"73"}]`)
	if err := store.Set(ctx, KeyFavorites, value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ctx, KeyFavorites)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() returned false, want true")
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	_ = store.Set(ctx, KeyDarkMode, []byte("false"))
	_ = store.Set(ctx, KeyDarkMode, []byte("true"))

	got, _, _ := store.Get(ctx, KeyDarkMode)
	if string(got) != "true" {
		t.Errorf("Get() = %q, want %q", got, "true")
	}

	// No temp files should be left behind
	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 1 {
		t.Errorf("found %d files in data dir, want 1", len(entries))
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())

	got, ok, err := store.Get(context.Background(), "non-existent-key")
	if err != nil {
		t.Fatalf("Get() error = %v, missing keys are not errors", err)
	}
	if ok || got != nil {
		t.Error("Get() returned a value for a missing key")
	}
}

func TestFileStore_Remove(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	_ = store.Set(ctx, KeyUserToken, []byte(`"abc"`))
	_ = store.Set(ctx, KeyUserData, []byte(`{}`))

	if err := store.Remove(ctx, KeyUserToken, KeyUserData, "never-set"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	for _, key := range []string{KeyUserToken, KeyUserData} {
		if _, ok, _ := store.Get(ctx, key); ok {
			t.Errorf("key %q still present after Remove()", key)
		}
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"../escape", "a/b", ""} {
		if err := store.Set(ctx, key, []byte("x")); err == nil {
			t.Errorf("Set(%q) should fail", key)
		}
	}
}

func TestFileStore_FilePermissions(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	_ = store.Set(context.Background(), KeyUserToken, []byte(`"abc"`))

	info, err := os.Stat(filepath.Join(store.Dir(), KeyUserToken+".json"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Set(ctx, KeyDarkMode, []byte("true")); err == nil {
		t.Error("Set() with cancelled context should fail")
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DefaultDataDir(); got != filepath.Join("/tmp/xdg-data", "gomate") {
		t.Errorf("DefaultDataDir() = %q", got)
	}

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := DefaultDataDir(); got != filepath.Join("/home/tester", ".local", "share", "gomate") {
		t.Errorf("DefaultDataDir() = %q", got)
	}
}
