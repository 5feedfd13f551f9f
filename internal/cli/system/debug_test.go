package system

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/storage"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("db-path failed: %v", err)
	}
	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if out["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("expected path %q, got %q", ctx.Store.GetConfigPath(), out["path"])
	}
}

func TestDebugKeysCmd(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := storage.SaveSnapshot(ctx.Store, models.DefaultSnapshot(time.Now()), models.SlotAll); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	var keys []string
	if err := json.Unmarshal(buf.Bytes(), &keys); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 keys, got %v", keys)
	}
}

func TestDebugDumpCmd(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := storage.SaveSnapshot(ctx.Store, models.DefaultSnapshot(time.Now()), models.SlotAll); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	t.Run("json document", func(t *testing.T) {
		buf.Reset()
		if err := (&DebugDumpCmd{Key: constants.KeyDashboardCats}).Run(ctx); err != nil {
			t.Fatalf("dump failed: %v", err)
		}
		var cats []string
		if err := json.Unmarshal(buf.Bytes(), &cats); err != nil {
			t.Fatalf("expected a JSON array, got %q: %v", buf.String(), err)
		}
	})

	t.Run("bare theme string", func(t *testing.T) {
		buf.Reset()
		if err := (&DebugDumpCmd{Key: constants.KeyTheme}).Run(ctx); err != nil {
			t.Fatalf("dump failed: %v", err)
		}
		if !strings.Contains(buf.String(), constants.DefaultThemeColor) {
			t.Errorf("expected theme in output, got %q", buf.String())
		}
	})

	t.Run("missing key", func(t *testing.T) {
		if err := (&DebugDumpCmd{Key: "nope"}).Run(ctx); err == nil {
			t.Error("expected an error for a missing document")
		}
	})
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "up to date") {
		t.Errorf("expected up to date message, got %q", buf.String())
	}
}
