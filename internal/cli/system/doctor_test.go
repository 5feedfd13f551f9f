package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/julianstephens/lifetracks/internal/ai"
	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/cli"
	"github.com/julianstephens/lifetracks/internal/config"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/printers"
	"github.com/julianstephens/lifetracks/internal/storage"
	"github.com/julianstephens/lifetracks/internal/storage/sqlite"
)

// newTestContext wires a context around store without initializing it.
func newTestContext(t *testing.T, store storage.Provider, dir string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return &cli.Context{
		Store:     store,
		Config:    &config.Config{BackupMax: constants.MaxBackups},
		ConfigDir: dir,
		Backups:   backup.NewManager(dir),
		AI:        ai.Disabled{},
		Confirmer: app.AlwaysConfirm,
		Printer:   printers.New(buf),
	}, buf
}

func setupTestDoctorDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	prev := color.NoColor
	color.NoColor = true
	ctx, buf := newTestContext(t, store, tempDir)

	cleanup := func() {
		color.NoColor = prev
		_ = store.Close()
	}
	return ctx, buf, cleanup
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, buf.String())
	}
	// Missing backups is a warning, not a failure
	if !strings.Contains(buf.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected backup warning, got:\n%s", buf.String())
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if _, err := ctx.Backups.CreateBackup(models.DefaultSnapshot(time.Now())); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups check to pass, got:\n%s", buf.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestCheckSchemaVersion_Incomplete(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("UPDATE schema_version SET version = 0"); err != nil {
		t.Fatalf("failed to downgrade schema version: %v", err)
	}
	if err := checkSchemaVersion(ctx); err == nil || !strings.Contains(err.Error(), "migrations incomplete") {
		t.Errorf("expected incomplete migrations error, got %v", err)
	}
}

func TestCheckSchemaVersion_Unversioned(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "data.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	ctx, _ := newTestContext(t, store, dir)

	if err := checkSchemaVersion(ctx); err != errNoSchema {
		t.Errorf("expected errNoSchema, got %v", err)
	}
}

func corruptRatings(t *testing.T, store storage.Provider) {
	t.Helper()
	snap := models.DefaultSnapshot(time.Now())
	for i, w := range snap.Widgets {
		if d, ok := w.Data.(models.RatingData); ok {
			d.Items = append(d.Items, models.RatingItem{ID: "bad", Title: "Dune", Rating: 9, Category: d.Categories[0]})
			snap.Widgets[i].Data = d
		}
	}
	if err := storage.SaveSnapshot(store, snap, models.SlotAll); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
}

func TestDoctorCmd_ReportsConflicts(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()
	corruptRatings(t, ctx.Store)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on out-of-range rating")
	}
	if !strings.Contains(buf.String(), "(fixable)") {
		t.Errorf("expected a fixable conflict in the report, got:\n%s", buf.String())
	}
}

func TestDoctorCmd_Fix(t *testing.T) {
	ctx, _, cleanup := setupTestDoctorDB(t)
	defer cleanup()
	corruptRatings(t, ctx.Store)

	if err := (&DoctorCmd{Fix: true}).Run(ctx); err != nil {
		t.Fatalf("doctor --fix failed: %v", err)
	}

	snap := storage.LoadSnapshot(ctx.Store, time.Now())
	for _, w := range snap.Widgets {
		d, ok := w.Data.(models.RatingData)
		if !ok {
			continue
		}
		for _, item := range d.Items {
			if item.Rating > constants.MaxRating {
				t.Errorf("rating %v for %q was not clamped", item.Rating, item.Title)
			}
		}
	}

	backups, err := ctx.Backups.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Errorf("expected one safety backup, got %d (err %v)", len(backups), err)
	}
}

func TestDoctorCmd_FixLeavesOrphanedItems(t *testing.T) {
	ctx, buf, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	snap := models.DefaultSnapshot(time.Now())
	for i, w := range snap.Widgets {
		if d, ok := w.Data.(models.RatingData); ok {
			d.Items = append(d.Items, models.RatingItem{ID: "lost", Title: "Dune", Rating: 4, Category: "NoSuchTab"})
			snap.Widgets[i].Data = d
		}
	}
	if err := storage.SaveSnapshot(ctx.Store, snap, models.SlotAll); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}

	if err := (&DoctorCmd{Fix: true}).Run(ctx); err == nil {
		t.Fatal("expected orphaned items to need manual repair")
	}
	if !strings.Contains(buf.String(), "in no tab") {
		t.Errorf("expected the orphaned item in the report, got:\n%s", buf.String())
	}

	after := storage.LoadSnapshot(ctx.Store, time.Now())
	for _, w := range after.Widgets {
		if d, ok := w.Data.(models.RatingData); ok {
			if got := d.Items[len(d.Items)-1].Category; got != "NoSuchTab" {
				t.Errorf("orphaned item was moved to %q", got)
			}
		}
	}
}

func TestCheckClockTimezone(t *testing.T) {
	if err := checkClockTimezone(nil); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}
}
