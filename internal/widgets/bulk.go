package widgets

import (
	"fmt"
	"slices"

	"github.com/julianstephens/lifetracks/internal/models"
)

// DeleteItems removes the selected items of a LIST, RATING or NOTE widget.
// Confirmation is the caller's job.
func DeleteItems(w models.Widget, sel models.Selection) (models.Widget, error) {
	if sel.IsEmpty() {
		return w, ErrEmptySelection
	}
	switch d := w.Data.(type) {
	case models.ListData:
		d.Items = slices.DeleteFunc(slices.Clone(d.Items), func(it models.PlaylistItem) bool { return sel.Has(it.ID) })
		w.Data = d
	case models.RatingData:
		d.Items = slices.DeleteFunc(slices.Clone(d.Items), func(it models.RatingItem) bool { return sel.Has(it.ID) })
		w.Data = d
	case models.NotebookData:
		d.Items = slices.DeleteFunc(slices.Clone(d.Items), func(it models.NotebookItem) bool { return sel.Has(it.ID) })
		w.Data = d
	default:
		return w, wrongType(w, "bulk delete")
	}
	return w, nil
}

// MoveItems re-categorizes the selected LIST or RATING items. The target must
// be one of the widget's tabs.
func MoveItems(w models.Widget, sel models.Selection, category string) (models.Widget, error) {
	if sel.IsEmpty() {
		return w, ErrEmptySelection
	}
	cats, err := Categories(w)
	if err != nil {
		return w, wrongType(w, "bulk move")
	}
	if !slices.Contains(cats, category) {
		return w, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	switch d := w.Data.(type) {
	case models.ListData:
		items := slices.Clone(d.Items)
		for i := range items {
			if sel.Has(items[i].ID) {
				items[i].Category = category
			}
		}
		d.Items = items
		w.Data = d
	case models.RatingData:
		items := slices.Clone(d.Items)
		for i := range items {
			if sel.Has(items[i].ID) {
				items[i].Category = category
			}
		}
		d.Items = items
		w.Data = d
	}
	return w, nil
}
