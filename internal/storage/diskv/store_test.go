package diskv

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskvRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	store := NewStore(base)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := store.Put("widgets", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("appTheme", []byte(`#0f172a`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	reopened := NewStore(base)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	value, ok, err := reopened.Get("appTheme")
	if err != nil || !ok || string(value) != "#0f172a" {
		t.Errorf("expected stored theme, got %q ok=%v err=%v", value, ok, err)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if strings.Join(keys, ",") != "appTheme,widgets" {
		t.Errorf("expected [appTheme widgets], got %v", keys)
	}

	if err := reopened.Delete("widgets"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := reopened.Delete("widgets"); err != nil {
		t.Errorf("deleting a missing key should be a no-op, got %v", err)
	}
	if _, ok, _ := reopened.Get("widgets"); ok {
		t.Error("expected widgets to be gone")
	}
}

func TestDiskvLoadMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for a missing directory")
	}
}
