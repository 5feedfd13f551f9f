// Package widgets holds the per-type operations on a widget's data. Each
// operation takes a widget, returns an updated copy and leaves the input
// untouched; Replace then swaps the copy into the widget list by id.
package widgets

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetracks/internal/constants"
	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/models"
)

var (
	ErrWidgetNotFound    = apperr.NewValidation("widget not found")
	ErrWrongType         = apperr.NewValidation("operation not supported by this widget type")
	ErrItemNotFound      = apperr.NewValidation("item not found")
	ErrEmptyTitle        = apperr.NewValidation("title is required")
	ErrEmptySelection    = apperr.NewValidation("nothing selected")
	ErrEmptyCategory     = apperr.NewValidation("category name is required")
	ErrDuplicateCategory = apperr.NewValidation("category already exists")
	ErrUnknownCategory   = apperr.NewValidation("category not found")
	ErrNoEligibleItems   = apperr.NewValidation("no eligible items")
	ErrInvalidDate       = apperr.NewValidation("date must be YYYY-MM-DD")
	ErrInvalidValue      = apperr.NewValidation("value must be a number")
	ErrInvalidFrequency  = apperr.NewValidation("frequency must be a positive whole number of days")
	ErrInvalidRating     = apperr.NewValidation("rating must be between 0 and 5")
	ErrColorNotInPalette = apperr.NewValidation("color is not in the accent palette")
	ErrEmptyContent      = apperr.NewValidation("content is empty")
)

// Find returns the widget with id.
func Find(list []models.Widget, id string) (models.Widget, error) {
	for _, w := range list {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Widget{}, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
}

// Replace returns a copy of list with the widget sharing w's id swapped for w.
func Replace(list []models.Widget, w models.Widget) ([]models.Widget, error) {
	for i := range list {
		if list[i].ID == w.ID {
			out := append([]models.Widget(nil), list...)
			out[i] = w
			return out, nil
		}
	}
	return list, fmt.Errorf("%w: %s", ErrWidgetNotFound, w.ID)
}

// FirstOfType returns the first widget of type t in list order.
func FirstOfType(list []models.Widget, t models.WidgetType) (models.Widget, bool) {
	for _, w := range list {
		if w.Type == t {
			return w, true
		}
	}
	return models.Widget{}, false
}

// SetTitle renames a widget.
func SetTitle(w models.Widget, title string) (models.Widget, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return w, ErrEmptyTitle
	}
	w.Title = title
	return w, nil
}

// SetColor picks a COUNTDOWN or LAST_DONE accent from the fixed palette.
func SetColor(w models.Widget, color string) (models.Widget, error) {
	if w.Type != models.WidgetCountdown && w.Type != models.WidgetLastDone {
		return w, wrongType(w, "accent color")
	}
	color = strings.ToLower(strings.TrimSpace(color))
	if !constants.InPalette(constants.AccentPalette, color) {
		return w, fmt.Errorf("%w: %s", ErrColorNotInPalette, color)
	}
	w.Color = color
	return w, nil
}

func wrongType(w models.Widget, op string) error {
	return fmt.Errorf("%w: %s on %s widget %q", ErrWrongType, op, w.Type, w.Title)
}

func itemNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}
