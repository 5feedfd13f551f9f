package sqlite

import (
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "lifetracks.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store, func() { store.Close() }
}

func TestPutGetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if _, ok, err := store.Get("notes"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Put("notes", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("notes", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, ok, err := store.Get("notes")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(value) != "[]" {
		t.Errorf("expected %q, got %q", "[]", value)
	}

	if err := store.Put("appTheme", []byte("#ef4444")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if strings.Join(keys, ",") != "appTheme,notes" {
		t.Errorf("expected [appTheme notes], got %v", keys)
	}

	if err := store.Delete("notes"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get("notes"); ok {
		t.Error("expected notes to be deleted")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("expected not initialized error, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifetracks.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Put("dashboardCats", []byte(`["时间"]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get("dashboardCats")
	if err != nil || !ok || string(value) != `["时间"]` {
		t.Errorf("expected stored categories, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, _, err := store.Get("notes"); err == nil {
		t.Error("expected Get to fail before Load")
	}
	if err := store.Put("notes", nil); err == nil {
		t.Error("expected Put to fail before Load")
	}
}

func TestSchemaVersion(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != 1 || latest != 1 {
		t.Errorf("expected schema 1/1, got %d/%d", current, latest)
	}

	closed := NewStore(filepath.Join(t.TempDir(), "closed.db"))
	if _, _, err := closed.SchemaVersion(); err == nil {
		t.Error("expected error before Init")
	}
}
