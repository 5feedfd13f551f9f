package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
)

// LoadSlot decodes the JSON document stored under key. A missing key, a read
// failure or a malformed document yields def; the latter two are logged.
func LoadSlot[T any](p Provider, key string, def T) T {
	raw, ok, err := p.Get(key)
	if err != nil {
		logger.Warn("Failed to read stored document, using default", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Stored document is malformed, using default", "key", key, "error", err)
		return def
	}
	return v
}

// SaveSlot stores v as JSON under key.
func SaveSlot[T any](p Provider, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return p.Put(key, data)
}

// LoadTheme reads the theme color, stored as a bare string.
func LoadTheme(p Provider) string {
	raw, ok, err := p.Get(constants.KeyTheme)
	if err != nil {
		logger.Warn("Failed to read theme, using default", "error", err)
		return constants.DefaultThemeColor
	}
	theme := strings.TrimSpace(string(raw))
	if !ok || theme == "" {
		return constants.DefaultThemeColor
	}
	return theme
}

// LoadSnapshot reads all four slots, each falling back to its first-run default.
func LoadSnapshot(p Provider, now time.Time) models.Snapshot {
	def := models.DefaultSnapshot(now)
	snap := models.Snapshot{
		Notes:         LoadSlot(p, constants.KeyNotes, def.Notes),
		Widgets:       LoadSlot(p, constants.KeyWidgets, def.Widgets),
		DashboardCats: LoadSlot(p, constants.KeyDashboardCats, def.DashboardCats),
		ThemeColor:    LoadTheme(p),
	}
	return snap.Normalized()
}

// SaveSnapshot writes the slots named by dirty. Every slot is attempted; the
// returned error joins the individual failures.
func SaveSnapshot(p Provider, snap models.Snapshot, dirty models.Slot) error {
	var errs []error
	if dirty.Has(models.SlotNotes) {
		errs = append(errs, SaveSlot(p, constants.KeyNotes, snap.Notes))
	}
	if dirty.Has(models.SlotWidgets) {
		errs = append(errs, SaveSlot(p, constants.KeyWidgets, snap.Widgets))
	}
	if dirty.Has(models.SlotDashboardCats) {
		errs = append(errs, SaveSlot(p, constants.KeyDashboardCats, snap.DashboardCats))
	}
	if dirty.Has(models.SlotTheme) {
		errs = append(errs, p.Put(constants.KeyTheme, []byte(snap.ThemeColor)))
	}
	return errors.Join(errs...)
}
