package backup

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

func setupTestManager(t *testing.T) (*Manager, func()) {
	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	// Tick one second per call so every backup gets its own timestamp
	tick := testNow
	mgr.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	cleanup := func() {
		os.RemoveAll(tempDir)
	}
	return mgr, cleanup
}

func TestCreateBackup(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()

	snap := models.DefaultSnapshot(testNow)
	backupPath, err := mgr.CreateBackup(snap)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Base(backupPath) != "lifetracks-20240510-090001.json" {
		t.Errorf("unexpected backup name %s", filepath.Base(backupPath))
	}

	data, err := mgr.ReadBackup(filepath.Base(backupPath))
	if err != nil {
		t.Fatalf("ReadBackup failed: %v", err)
	}
	got, slots, err := Import(models.Snapshot{}, data)
	if err != nil {
		t.Fatalf("backup does not import: %v", err)
	}
	if slots != models.SlotAll {
		t.Errorf("expected every slot restored, got %b", slots)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("backup round trip mismatch")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()

	numBackups := constants.MaxBackups + 5
	for i := 0; i < numBackups; i++ {
		if _, err := mgr.CreateBackup(models.DefaultSnapshot(testNow)); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}

	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted correctly: backup %d is newer than backup %d", i, i-1)
		}
	}

	// The newest survive
	want := testNow.Add(time.Duration(numBackups) * time.Second)
	if !backups[0].Timestamp.Equal(want) {
		t.Errorf("expected newest backup at %v, got %v", want, backups[0].Timestamp)
	}
}

func TestListBackups(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(models.DefaultSnapshot(testNow)); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
	for _, backup := range backups {
		if backup.Path == "" {
			t.Error("backup path is empty")
		}
		if backup.Size == 0 {
			t.Error("backup size is 0")
		}
		if backup.Timestamp.IsZero() {
			t.Error("backup timestamp is zero")
		}
	}
}

func TestRestoreBackupCreatesPreRestoreBackup(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()

	original := models.DefaultSnapshot(testNow)
	backupPath, err := mgr.CreateBackup(original)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	current := original
	current.ThemeColor = "#059669"
	current.Notes = []models.Note{}
	current.DashboardCats = []string{"only"}

	restored, slots, err := mgr.RestoreBackup(current, backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if slots != models.SlotAll {
		t.Errorf("expected all slots, got %b", slots)
	}
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("restored state differs from backup")
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups after restore, got %d", len(backups))
	}
	data, err := mgr.ReadBackup(backups[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	safety, _, err := Import(models.Snapshot{}, data)
	if err != nil {
		t.Fatal(err)
	}
	if safety.ThemeColor != "#059669" {
		t.Errorf("safety copy should hold the pre-restore state, got theme %s", safety.ThemeColor)
	}
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	invalidPath := filepath.Join(mgr.GetBackupDir(), "invalid.json")
	if err := os.WriteFile(invalidPath, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to create invalid file: %v", err)
	}

	current := models.DefaultSnapshot(testNow)
	got, slots, err := mgr.RestoreBackup(current, invalidPath)
	if err == nil {
		t.Fatal("RestoreBackup should fail for invalid backup")
	}
	if slots != models.SlotNone || !reflect.DeepEqual(got, current) {
		t.Errorf("failed restore must leave state unchanged")
	}

	backups, _ := mgr.ListBackups()
	if len(backups) != 0 {
		t.Errorf("no safety copy should be written for an invalid backup, got %d", len(backups))
	}

	if _, _, err := mgr.RestoreBackup(current, filepath.Join(mgr.GetBackupDir(), "missing.json")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()
	mgr.now = func() time.Time { return testNow }

	paths := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.CreateBackup(models.DefaultSnapshot(testNow))
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}

		filename := filepath.Base(backupPath)
		if paths[filename] {
			t.Errorf("duplicate backup filename: %s", filename)
		}
		paths[filename] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 5 {
		t.Errorf("counter-suffixed backups should be listed, got %d", len(backups))
	}
}

func TestSetRetention(t *testing.T) {
	mgr, cleanup := setupTestManager(t)
	defer cleanup()
	mgr.SetRetention(2)
	mgr.SetRetention(0)

	for i := 0; i < 4; i++ {
		if _, err := mgr.CreateBackup(models.DefaultSnapshot(testNow)); err != nil {
			t.Fatal(err)
		}
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups kept, got %d", len(backups))
	}
}
