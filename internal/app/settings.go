package app

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/constants"
	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/models"
)

var (
	ErrThemeNotInPalette = apperr.NewValidation("theme color is not in the palette")
	ErrNoBackupManager   = apperr.NewValidation("backups are not configured")
)

// SetTheme picks the application color.
func (c *Controller) SetTheme(color string) error {
	color = strings.ToLower(strings.TrimSpace(color))
	if !constants.InPalette(constants.ThemePalette, color) {
		return fmt.Errorf("%w: %s", ErrThemeNotInPalette, color)
	}
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		s.ThemeColor = color
		return models.SlotTheme, nil
	})
}

// ClearData empties notes and widget records after confirmation. Widgets,
// categories and the theme are kept.
func (c *Controller) ClearData() error {
	if err := c.confirmed("Clear all data? Notes, list items, records and history are deleted; widgets and categories are kept. This cannot be undone."); err != nil {
		return err
	}
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		*s = backup.ClearContent(*s)
		return models.SlotNotes | models.SlotWidgets, nil
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

// Export serializes the state tree.
func (c *Controller) Export(format backup.Format) ([]byte, error) {
	return backup.Export(c.Snapshot(), format)
}

// Restore applies a backup document after confirmation. A malformed document
// leaves everything unchanged.
func (c *Controller) Restore(data []byte) error {
	// A bad document is reported without asking.
	if _, _, err := backup.Import(c.Snapshot(), data); err != nil {
		return err
	}
	if err := c.confirmed("Restore from backup? Slots present in the backup overwrite current data."); err != nil {
		return err
	}
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		next, slots, err := backup.Import(*s, data)
		if err != nil {
			return models.SlotNone, err
		}
		*s = next
		return slots, nil
	})
}

// CreateBackup writes a snapshot file through the backup manager.
func (c *Controller) CreateBackup() (string, error) {
	if c.backups == nil {
		return "", ErrNoBackupManager
	}
	return c.backups.CreateBackup(c.Snapshot())
}

// ListBackups lists backup files, newest first.
func (c *Controller) ListBackups() ([]backup.BackupInfo, error) {
	if c.backups == nil {
		return nil, ErrNoBackupManager
	}
	return c.backups.ListBackups()
}

// RestoreBackup applies a backup file after confirmation, keeping a safety
// copy of the current state.
func (c *Controller) RestoreBackup(path string) error {
	if c.backups == nil {
		return ErrNoBackupManager
	}
	if err := c.confirmed(fmt.Sprintf("Restore from %s? Current data is backed up first.", path)); err != nil {
		return err
	}
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		next, slots, err := c.backups.RestoreBackup(*s, path)
		if err != nil {
			return models.SlotNone, err
		}
		*s = next
		return slots, nil
	})
}
