package validation

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/tags"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// AutoFix repairs the fixable conflicts and returns the repaired snapshot,
// the slots that changed and a description of each fix.
func AutoFix(snap models.Snapshot, conflicts []Conflict) (models.Snapshot, models.Slot, []FixAction) {
	actions := []FixAction{}
	dirty := models.SlotNone

	for _, conflict := range conflicts {
		if !conflict.Fixable {
			continue
		}
		switch conflict.Type {
		case ConflictStaleTags:
			list := slices.Clone(snap.Notes)
			for i := range list {
				if slices.Contains(conflict.Items, list[i].ID) {
					list[i].Tags = tags.FromDocument(list[i].Content)
				}
			}
			snap.Notes = list
			dirty |= models.SlotNotes
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Recomputed tags for note(s) %v", conflict.Items),
				SourceConflict: conflict,
			})
		default:
			w, err := widgets.Find(snap.Widgets, conflict.WidgetID)
			if err != nil {
				continue // Widget vanished since validation
			}
			fixed, msg := fixWidget(w, conflict)
			if msg == "" {
				continue
			}
			if snap.Widgets, err = widgets.Replace(snap.Widgets, fixed); err != nil {
				continue
			}
			dirty |= models.SlotWidgets
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		}
	}
	return snap, dirty, actions
}

func fixWidget(w models.Widget, conflict Conflict) (models.Widget, string) {
	switch d := w.Data.(type) {
	case models.RatingData:
		if conflict.Type != ConflictRatingOutOfRange {
			return w, ""
		}
		items := slices.Clone(d.Items)
		for i := range items {
			r := items[i].Rating
			if math.IsNaN(r) {
				r = 0
			}
			items[i].Rating = math.Round(math.Max(0, math.Min(constants.MaxRating, r))*2) / 2
		}
		d.Items = items
		w.Data = d
		return w, fmt.Sprintf("Clamped %d rating(s) in %q", len(conflict.Items), w.Title)
	case models.LastDoneData:
		if conflict.Type != ConflictHistoryTooLong || len(d.History) <= constants.LastDoneHistoryCap {
			return w, ""
		}
		d.History = slices.Clone(d.History[:constants.LastDoneHistoryCap])
		w.Data = d
		return w, fmt.Sprintf("Trimmed history of %q to %d entries", w.Title, constants.LastDoneHistoryCap)
	case models.SeriesData:
		if conflict.Type != ConflictUnsortedPoints && conflict.Type != ConflictDuplicatePoints {
			return w, ""
		}
		// Later points win on a shared date, matching how points are added
		byDate := map[string]models.DataPoint{}
		for _, p := range d.Points {
			byDate[p.Date] = p
		}
		points := make([]models.DataPoint, 0, len(byDate))
		for _, p := range byDate {
			points = append(points, p)
		}
		slices.SortFunc(points, func(a, b models.DataPoint) int { return strings.Compare(a.Date, b.Date) })
		if slices.Equal(points, d.Points) {
			return w, ""
		}
		d.Points = points
		w.Data = d
		return w, fmt.Sprintf("Sorted and deduplicated %d point(s) in %q", len(points), w.Title)
	}
	return w, ""
}
