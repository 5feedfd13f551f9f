package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/lifetracks/internal/models"
)

// Categories returns a LIST or RATING widget's own category tabs.
func Categories(w models.Widget) ([]string, error) {
	switch d := w.Data.(type) {
	case models.ListData:
		return d.Categories, nil
	case models.RatingData:
		return d.Categories, nil
	}
	return nil, wrongType(w, "categories")
}

func withCategories(w models.Widget, cats []string) models.Widget {
	switch d := w.Data.(type) {
	case models.ListData:
		d.Categories = cats
		w.Data = d
	case models.RatingData:
		d.Categories = cats
		w.Data = d
	}
	return w
}

// itemCategory resolves the tab a new or edited item goes to. Blank means
// the first tab; any other name must be one of cats. A widget without tabs
// only takes blank.
func itemCategory(cats []string, category string) (string, error) {
	category = strings.TrimSpace(category)
	switch {
	case category == "" && len(cats) > 0:
		return cats[0], nil
	case category == "":
		return "", nil
	case !slices.Contains(cats, category):
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return category, nil
}

// AddCategory appends a tab. Empty and duplicate names are rejected.
func AddCategory(w models.Widget, name string) (models.Widget, error) {
	cats, err := Categories(w)
	if err != nil {
		return w, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return w, ErrEmptyCategory
	}
	if slices.Contains(cats, name) {
		return w, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	return withCategories(w, append(slices.Clone(cats), name)), nil
}

// RenameCategory renames a tab in the category list only. Items still carry
// the old name and no longer show under any tab until moved.
func RenameCategory(w models.Widget, oldName, newName string) (models.Widget, error) {
	cats, err := Categories(w)
	if err != nil {
		return w, err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return w, ErrEmptyCategory
	}
	idx := slices.Index(cats, oldName)
	if idx < 0 {
		return w, fmt.Errorf("%w: %s", ErrUnknownCategory, oldName)
	}
	if newName == oldName {
		return w, nil
	}
	if slices.Contains(cats, newName) {
		return w, fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
	}
	out := slices.Clone(cats)
	out[idx] = newName
	return withCategories(w, out), nil
}

// RemoveCategory drops a tab. Items in it are kept.
func RemoveCategory(w models.Widget, name string) (models.Widget, error) {
	cats, err := Categories(w)
	if err != nil {
		return w, err
	}
	if !slices.Contains(cats, name) {
		return w, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return withCategories(w, slices.DeleteFunc(slices.Clone(cats), func(c string) bool { return c == name })), nil
}

// OrphanedItems counts LIST/RATING items whose category is not a tab.
func OrphanedItems(w models.Widget) int {
	cats, err := Categories(w)
	if err != nil {
		return 0
	}
	n := 0
	switch d := w.Data.(type) {
	case models.ListData:
		for _, it := range d.Items {
			if !slices.Contains(cats, it.Category) {
				n++
			}
		}
	case models.RatingData:
		for _, it := range d.Items {
			if !slices.Contains(cats, it.Category) {
				n++
			}
		}
	}
	return n
}
