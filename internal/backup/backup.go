// Package backup exports and imports the state tree as one text document and
// keeps a rotating set of snapshot files on disk.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	backupDir string
	retention int
	now       func() time.Time
}

// NewManager creates a backup manager storing files under configDir/backups
func NewManager(configDir string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		retention: constants.MaxBackups,
		now:       time.Now,
	}
}

// SetRetention changes how many backups rotation keeps. Values below one are ignored.
func (m *Manager) SetRetention(n int) {
	if n > 0 {
		m.retention = n
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// ensureBackupDir creates the backup directory if it doesn't exist
func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup writes snap as a JSON backup file and rotates old ones
func (m *Manager) CreateBackup(snap models.Snapshot) (string, error) {
	return m.createBackup(snap, false)
}

// createBackup writes a new backup file.
// skipRotation keeps the pre-restore safety copy from evicting the backup being restored.
func (m *Manager) createBackup(snap models.Snapshot, skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := Export(snap, FormatJSON)
	if err != nil {
		return "", err
	}

	// Second precision, with a counter for collisions
	timestamp := m.now().Format(constants.BackupTimeFormat)
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			break
		}
		backupPath = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	if err := writeFileAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			// Log error but don't fail the backup operation
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// ListBackups returns a list of all available backups, sorted by timestamp (newest first)
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
		// Drop a collision counter (YYYYMMDD-HHMMSS-N)
		if parts := strings.Split(stamp, "-"); len(parts) == 3 {
			stamp = parts[0] + "-" + parts[1]
		}
		timestamp, err := time.ParseInLocation(constants.BackupTimeFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := m.retention; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// ReadBackup returns the raw contents of a backup file. path may be a bare
// file name inside the backup directory.
func (m *Manager) ReadBackup(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = filepath.Join(m.backupDir, path)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return data, nil
}

// RestoreBackup applies the backup at path on top of current. A safety copy
// of current is written first. Nothing is written when the backup does not
// parse.
func (m *Manager) RestoreBackup(current models.Snapshot, path string) (models.Snapshot, models.Slot, error) {
	data, err := m.ReadBackup(path)
	if err != nil {
		return current, models.SlotNone, err
	}
	next, slots, err := Import(current, data)
	if err != nil {
		return current, models.SlotNone, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	safety, err := m.createBackup(current, true)
	if err != nil {
		return current, models.SlotNone, fmt.Errorf("failed to back up current state before restore: %w", err)
	}
	logger.Info("Created backup of current state", "path", filepath.Base(safety))

	return next, slots, nil
}

// writeFileAtomic writes data to a temp file beside path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	// Sync to ensure data is written to disk
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Chmod(path, 0600)
}
