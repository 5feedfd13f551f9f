// Package dashboard arranges widgets under the global category list.
package dashboard

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/models"
)

var (
	ErrEmptyCategory     = apperr.NewValidation("category name is required")
	ErrDuplicateCategory = apperr.NewValidation("category already exists")
	ErrUnknownCategory   = apperr.NewValidation("category not found")
	ErrEmptySelection    = apperr.NewValidation("no widgets selected")
	ErrUnknownType       = apperr.NewValidation("unknown widget type")

	// ErrRenameToEmpty is returned when a rename is given a blank name. Front
	// ends treat it as a request to delete the category after confirmation.
	ErrRenameToEmpty = apperr.NewValidation("new category name is empty")
)

// Presentation is how a widget's detail view is shown.
type Presentation int

const (
	// Fullscreen is used for widgets holding open-ended item collections.
	Fullscreen Presentation = iota
	// Dialog is used for small fixed forms.
	Dialog
)

func (p Presentation) String() string {
	if p == Dialog {
		return "dialog"
	}
	return "fullscreen"
}

// Row is one category and its widgets in list order.
type Row struct {
	Category string
	Widgets  []models.Widget
}

// AddCategory appends name to the category list.
func AddCategory(cats []string, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return cats, ErrEmptyCategory
	}
	if slices.Contains(cats, name) {
		return cats, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	return append(slices.Clone(cats), name), nil
}

// RenameCategory renames an entry of the category list. Widgets keep their
// old category name.
func RenameCategory(cats []string, oldName, newName string) ([]string, error) {
	idx := slices.Index(cats, oldName)
	if idx < 0 {
		return cats, fmt.Errorf("%w: %s", ErrUnknownCategory, oldName)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return cats, ErrRenameToEmpty
	}
	if newName == oldName {
		return cats, nil
	}
	if slices.Contains(cats, newName) {
		return cats, fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
	}
	out := slices.Clone(cats)
	out[idx] = newName
	return out, nil
}

// DeleteCategory removes name from the list. Widgets are not touched.
func DeleteCategory(cats []string, name string) ([]string, error) {
	if !slices.Contains(cats, name) {
		return cats, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return slices.DeleteFunc(slices.Clone(cats), func(c string) bool { return c == name }), nil
}

// DefaultCategory is where a widget lands when no category is given.
func DefaultCategory(cats []string) string {
	if len(cats) > 0 {
		return cats[0]
	}
	return constants.FallbackDashboardCategory
}

// AddWidget appends a fresh widget of type t to category, or to
// DefaultCategory when category is blank. A named category must exist.
func AddWidget(list []models.Widget, cats []string, id string, t models.WidgetType, category string, now time.Time) ([]models.Widget, models.Widget, error) {
	if !slices.Contains(models.WidgetTypes, t) {
		return list, models.Widget{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	category = strings.TrimSpace(category)
	switch {
	case category == "":
		category = DefaultCategory(cats)
	case !slices.Contains(cats, category):
		return list, models.Widget{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	w := models.NewWidget(id, t, category, now)
	return append(slices.Clone(list), w), w, nil
}

// DeleteWidgets removes the selected widgets. Confirmation is the caller's job.
func DeleteWidgets(list []models.Widget, sel models.Selection) ([]models.Widget, error) {
	if sel.IsEmpty() {
		return list, ErrEmptySelection
	}
	return slices.DeleteFunc(slices.Clone(list), func(w models.Widget) bool { return sel.Has(w.ID) }), nil
}

// MoveWidgets reassigns the selected widgets to an existing category.
func MoveWidgets(list []models.Widget, cats []string, sel models.Selection, category string) ([]models.Widget, error) {
	if sel.IsEmpty() {
		return list, ErrEmptySelection
	}
	if !slices.Contains(cats, category) {
		return list, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	out := slices.Clone(list)
	for i := range out {
		if sel.Has(out[i].ID) {
			out[i].DashboardCategory = category
		}
	}
	return out, nil
}

// Grid returns the widgets filed under category.
func Grid(list []models.Widget, category string) []models.Widget {
	out := []models.Widget{}
	for _, w := range list {
		if w.DashboardCategory == category {
			out = append(out, w)
		}
	}
	return out
}

// Rows groups widgets by category in category-list order. Empty categories
// still get a row.
func Rows(cats []string, list []models.Widget) []Row {
	rows := make([]Row, len(cats))
	for i, c := range cats {
		rows[i] = Row{Category: c, Widgets: Grid(list, c)}
	}
	return rows
}

// Orphans returns widgets whose category is not in the list. They appear in
// no row until moved.
func Orphans(cats []string, list []models.Widget) []models.Widget {
	var out []models.Widget
	for _, w := range list {
		if !slices.Contains(cats, w.DashboardCategory) {
			out = append(out, w)
		}
	}
	return out
}

// PresentationFor picks the detail view style for a widget type.
func PresentationFor(t models.WidgetType) Presentation {
	switch t {
	case models.WidgetCountdown, models.WidgetLastDone, models.WidgetSeries:
		return Dialog
	}
	return Fullscreen
}
