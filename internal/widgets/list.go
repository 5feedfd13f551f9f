package widgets

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/julianstephens/lifetracks/internal/models"
)

func listData(w models.Widget, op string) (models.ListData, error) {
	d, ok := w.Data.(models.ListData)
	if !ok {
		return d, wrongType(w, op)
	}
	return d, nil
}

// AddListItem prepends an incomplete, unstarred item to category, or to the
// first tab when category is blank.
func AddListItem(w models.Widget, id, title, category string) (models.Widget, error) {
	d, err := listData(w, "add item")
	if err != nil {
		return w, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return w, ErrEmptyTitle
	}
	category, err = itemCategory(d.Categories, category)
	if err != nil {
		return w, err
	}
	item := models.PlaylistItem{ID: id, Title: title, Category: category}
	d.Items = append([]models.PlaylistItem{item}, d.Items...)
	w.Data = d
	return w, nil
}

func updateListItem(w models.Widget, id, op string, fn func(*models.PlaylistItem) error) (models.Widget, error) {
	d, err := listData(w, op)
	if err != nil {
		return w, err
	}
	idx := slices.IndexFunc(d.Items, func(it models.PlaylistItem) bool { return it.ID == id })
	if idx < 0 {
		return w, itemNotFound(id)
	}
	items := slices.Clone(d.Items)
	if err := fn(&items[idx]); err != nil {
		return w, err
	}
	d.Items = items
	w.Data = d
	return w, nil
}

// EditListItem retitles an item.
func EditListItem(w models.Widget, id, title string) (models.Widget, error) {
	title = strings.TrimSpace(title)
	return updateListItem(w, id, "edit item", func(it *models.PlaylistItem) error {
		if title == "" {
			return ErrEmptyTitle
		}
		it.Title = title
		return nil
	})
}

func ToggleComplete(w models.Widget, id string) (models.Widget, error) {
	return updateListItem(w, id, "toggle complete", func(it *models.PlaylistItem) error {
		it.Completed = !it.Completed
		return nil
	})
}

func ToggleStar(w models.Widget, id string) (models.Widget, error) {
	return updateListItem(w, id, "toggle star", func(it *models.PlaylistItem) error {
		it.Starred = !it.Starred
		return nil
	})
}

func DeleteListItem(w models.Widget, id string) (models.Widget, error) {
	d, err := listData(w, "delete item")
	if err != nil {
		return w, err
	}
	if !slices.ContainsFunc(d.Items, func(it models.PlaylistItem) bool { return it.ID == id }) {
		return w, itemNotFound(id)
	}
	d.Items = slices.DeleteFunc(slices.Clone(d.Items), func(it models.PlaylistItem) bool { return it.ID == id })
	w.Data = d
	return w, nil
}

// SortedListItems returns the items of category ("" for every item) in
// display order: incomplete before completed, starred before unstarred, then
// newest first. Items are prepended on add so stored order is already newest
// first and the sort is stable.
func SortedListItems(d models.ListData, category string) []models.PlaylistItem {
	out := make([]models.PlaylistItem, 0, len(d.Items))
	for _, it := range d.Items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b models.PlaylistItem) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		if a.Starred != b.Starred {
			if a.Starred {
				return -1
			}
			return 1
		}
		return 0
	})
	return out
}

// RandomListItem picks uniformly among the incomplete items of category.
func RandomListItem(d models.ListData, category string, rng *rand.Rand) (models.PlaylistItem, error) {
	var candidates []models.PlaylistItem
	for _, it := range d.Items {
		if !it.Completed && (category == "" || it.Category == category) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return models.PlaylistItem{}, ErrNoEligibleItems
	}
	return candidates[rng.IntN(len(candidates))], nil
}
