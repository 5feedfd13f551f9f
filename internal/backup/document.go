package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// Format is the text encoding of a backup document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrEmptyDocument = apperr.NewValidation("backup document is empty")
	ErrMalformed     = apperr.NewValidation("backup document is malformed")
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown backup format %q (want json or yaml)", s)
}

// Export serializes the whole state tree as {notes, widgets, dashboardCats,
// themeColor}.
func Export(snap models.Snapshot, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(snap.Normalized(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	if format != FormatYAML {
		return data, nil
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to convert backup to yaml: %w", err)
	}
	out, err := yaml.Marshal(integralFloats(tree))
	if err != nil {
		return nil, fmt.Errorf("failed to convert backup to yaml: %w", err)
	}
	return out, nil
}

// integralFloats turns whole-number float64s (epoch millis, ids) into int64 so
// YAML prints them without an exponent.
func integralFloats(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = integralFloats(e)
		}
	case []any:
		for i, e := range t {
			t[i] = integralFloats(e)
		}
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t)
		}
	}
	return v
}

// document mirrors Snapshot with raw slots so absent and null keys can be
// told apart from empty ones.
type document struct {
	Notes         json.RawMessage `json:"notes"`
	Widgets       json.RawMessage `json:"widgets"`
	DashboardCats json.RawMessage `json:"dashboardCats"`
	ThemeColor    json.RawMessage `json:"themeColor"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Import applies a backup document on top of current. Every key present and
// non-null replaces its slot; absent keys leave the slot alone. The document
// is decoded in full before anything is assigned, so on error current is
// returned untouched. The returned Slot names the replaced slots.
func Import(current models.Snapshot, data []byte) (models.Snapshot, models.Slot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return current, models.SlotNone, ErrEmptyDocument
	}
	if data[0] != '{' {
		converted, err := yamlToJSON(data)
		if err != nil {
			return current, models.SlotNone, err
		}
		data = converted
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return current, models.SlotNone, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var (
		next  = current
		slots models.Slot
	)
	// Decode into fresh values; unmarshalling into next's slices would reuse
	// current's backing arrays.
	if present(doc.Notes) {
		var notes []models.Note
		if err := json.Unmarshal(doc.Notes, &notes); err != nil {
			return current, models.SlotNone, fmt.Errorf("%w: notes: %v", ErrMalformed, err)
		}
		next.Notes = notes
		slots |= models.SlotNotes
	}
	if present(doc.Widgets) {
		var ws []models.Widget
		if err := json.Unmarshal(doc.Widgets, &ws); err != nil {
			return current, models.SlotNone, fmt.Errorf("%w: widgets: %v", ErrMalformed, err)
		}
		next.Widgets = ws
		slots |= models.SlotWidgets
	}
	if present(doc.DashboardCats) {
		var cats []string
		if err := json.Unmarshal(doc.DashboardCats, &cats); err != nil {
			return current, models.SlotNone, fmt.Errorf("%w: dashboardCats: %v", ErrMalformed, err)
		}
		next.DashboardCats = cats
		slots |= models.SlotDashboardCats
	}
	if present(doc.ThemeColor) {
		var theme string
		if err := json.Unmarshal(doc.ThemeColor, &theme); err != nil {
			return current, models.SlotNone, fmt.Errorf("%w: themeColor: %v", ErrMalformed, err)
		}
		next.ThemeColor = theme
		slots |= models.SlotTheme
	}
	return next.Normalized(), slots, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, ok := tree.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformed)
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// ClearContent empties the notes and every widget's records while keeping
// widgets, their settings, the dashboard categories and the theme.
func ClearContent(snap models.Snapshot) models.Snapshot {
	out := models.Snapshot{
		Notes:         []models.Note{},
		Widgets:       make([]models.Widget, len(snap.Widgets)),
		DashboardCats: snap.DashboardCats,
		ThemeColor:    snap.ThemeColor,
	}
	for i, w := range snap.Widgets {
		out.Widgets[i] = widgets.ClearContent(w)
	}
	return out.Normalized()
}
