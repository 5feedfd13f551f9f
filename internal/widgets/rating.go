package widgets

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

// RatingInput carries the editable fields of a RATING item.
type RatingInput struct {
	Title    string
	Rating   float64
	Category string
	Cover    string
	Review   string
}

func ratingData(w models.Widget, op string) (models.RatingData, error) {
	d, ok := w.Data.(models.RatingData)
	if !ok {
		return d, wrongType(w, op)
	}
	return d, nil
}

// NormalizeRating snaps r to the nearest half star within 0..5.
func NormalizeRating(r float64) (float64, error) {
	if math.IsNaN(r) || r < 0 || r > constants.MaxRating {
		return 0, ErrInvalidRating
	}
	return math.Round(r*2) / 2, nil
}

// item validates in against the widget's tabs. keep is a category the item
// may retain even when no tab carries it any more.
func (in RatingInput) item(id string, cats []string, keep string) (models.RatingItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.RatingItem{}, ErrEmptyTitle
	}
	r, err := NormalizeRating(in.Rating)
	if err != nil {
		return models.RatingItem{}, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" || category != keep {
		if category, err = itemCategory(cats, category); err != nil {
			return models.RatingItem{}, err
		}
	}
	return models.RatingItem{
		ID:       id,
		Title:    title,
		Rating:   r,
		Category: category,
		Cover:    in.Cover,
		Review:   strings.TrimSpace(in.Review),
	}, nil
}

// AddRatingItem prepends a new item. A blank category means the first tab.
func AddRatingItem(w models.Widget, id string, in RatingInput) (models.Widget, error) {
	d, err := ratingData(w, "add item")
	if err != nil {
		return w, err
	}
	item, err := in.item(id, d.Categories, "")
	if err != nil {
		return w, err
	}
	d.Items = append([]models.RatingItem{item}, d.Items...)
	w.Data = d
	return w, nil
}

// EditRatingItem overwrites every editable field of an item.
func EditRatingItem(w models.Widget, id string, in RatingInput) (models.Widget, error) {
	d, err := ratingData(w, "edit item")
	if err != nil {
		return w, err
	}
	idx := slices.IndexFunc(d.Items, func(it models.RatingItem) bool { return it.ID == id })
	if idx < 0 {
		return w, itemNotFound(id)
	}
	item, err := in.item(id, d.Categories, d.Items[idx].Category)
	if err != nil {
		return w, err
	}
	items := slices.Clone(d.Items)
	items[idx] = item
	d.Items = items
	w.Data = d
	return w, nil
}

func DeleteRatingItem(w models.Widget, id string) (models.Widget, error) {
	d, err := ratingData(w, "delete item")
	if err != nil {
		return w, err
	}
	if !slices.ContainsFunc(d.Items, func(it models.RatingItem) bool { return it.ID == id }) {
		return w, itemNotFound(id)
	}
	d.Items = slices.DeleteFunc(slices.Clone(d.Items), func(it models.RatingItem) bool { return it.ID == id })
	w.Data = d
	return w, nil
}

// FilterRating returns the items in category, or all of them for "".
func FilterRating(d models.RatingData, category string) []models.RatingItem {
	out := make([]models.RatingItem, 0, len(d.Items))
	for _, it := range d.Items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// RandomRatingItem picks uniformly among FilterRating(d, category).
func RandomRatingItem(d models.RatingData, category string, rng *rand.Rand) (models.RatingItem, error) {
	items := FilterRating(d, category)
	if len(items) == 0 {
		return models.RatingItem{}, ErrNoEligibleItems
	}
	return items[rng.IntN(len(items))], nil
}
