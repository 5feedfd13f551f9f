package validation

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/tags"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictOrphanedWidget    ConflictType = "orphaned_widget"
	ConflictOrphanedItems     ConflictType = "orphaned_items"
	ConflictUnsortedPoints    ConflictType = "unsorted_points"
	ConflictDuplicatePoints   ConflictType = "duplicate_points"
	ConflictHistoryTooLong    ConflictType = "history_too_long"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictRatingOutOfRange  ConflictType = "rating_out_of_range"
	ConflictStaleTags         ConflictType = "stale_tags"
	ConflictMultipleNotebooks ConflictType = "multiple_notebooks"
)

// Conflict represents a detected problem in the state tree
type Conflict struct {
	Type        ConflictType
	Description string
	WidgetID    string   // Widget involved (if applicable)
	Items       []string // IDs or dates involved
	Fixable     bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a snapshot for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot checks notes, widgets and categories
func (v *Validator) ValidateSnapshot(snap models.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.checkIDs(snap)...)
	result.Conflicts = append(result.Conflicts, v.checkNotes(snap.Notes)...)

	notebooks := 0
	for _, w := range snap.Widgets {
		if w.DashboardCategory != "" && !slices.Contains(snap.DashboardCats, w.DashboardCategory) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedWidget,
				Description: fmt.Sprintf("Widget %q is filed under missing category %q", w.Title, w.DashboardCategory),
				WidgetID:    w.ID,
			})
		}
		if w.Type == models.WidgetNote {
			notebooks++
		}
		result.Conflicts = append(result.Conflicts, v.checkWidget(w)...)
	}
	if notebooks > 1 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMultipleNotebooks,
			Description: fmt.Sprintf("%d notebook widgets exist; notes are only ever moved into the first", notebooks),
		})
	}
	return result
}

func (v *Validator) checkIDs(snap models.Snapshot) []Conflict {
	var conflicts []Conflict
	dup := func(kind string, ids []string) {
		seen := map[string]int{}
		for _, id := range ids {
			seen[id]++
		}
		var dups []string
		for id, n := range seen {
			if n > 1 {
				dups = append(dups, id)
			}
		}
		sort.Strings(dups)
		if len(dups) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate %s IDs: %v", kind, dups),
				Items:       dups,
			})
		}
	}

	noteIDs := make([]string, len(snap.Notes))
	for i, n := range snap.Notes {
		noteIDs[i] = n.ID
	}
	dup("note", noteIDs)

	widgetIDs := make([]string, len(snap.Widgets))
	for i, w := range snap.Widgets {
		widgetIDs[i] = w.ID
	}
	dup("widget", widgetIDs)
	return conflicts
}

func (v *Validator) checkNotes(list []models.Note) []Conflict {
	var conflicts []Conflict
	for _, n := range list {
		if !slices.Equal(n.Tags, tags.FromDocument(n.Content)) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictStaleTags,
				Description: fmt.Sprintf("Note %s has tags %v that do not match its content", n.ID, n.Tags),
				Items:       []string{n.ID},
				Fixable:     true,
			})
		}
	}
	return conflicts
}

func (v *Validator) checkWidget(w models.Widget) []Conflict {
	var conflicts []Conflict
	if n := widgets.OrphanedItems(w); n > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOrphanedItems,
			Description: fmt.Sprintf("Widget %q has %d items in no tab", w.Title, n),
			WidgetID:    w.ID,
		})
	}

	switch d := w.Data.(type) {
	case models.RatingData:
		var bad []string
		for _, it := range d.Items {
			if math.IsNaN(it.Rating) || it.Rating < 0 || it.Rating > constants.MaxRating {
				bad = append(bad, it.ID)
			}
		}
		if len(bad) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictRatingOutOfRange,
				Description: fmt.Sprintf("Widget %q has ratings outside 0-5: %v", w.Title, bad),
				WidgetID:    w.ID,
				Items:       bad,
				Fixable:     true,
			})
		}
	case models.CountdownData:
		if !isValidDate(d.TargetDate) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Countdown %q has invalid target date: %s", w.Title, d.TargetDate),
				WidgetID:    w.ID,
				Items:       []string{d.TargetDate},
			})
		}
	case models.LastDoneData:
		if len(d.History) > constants.LastDoneHistoryCap {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictHistoryTooLong,
				Description: fmt.Sprintf("Widget %q keeps %d history entries (cap %d)", w.Title, len(d.History), constants.LastDoneHistoryCap),
				WidgetID:    w.ID,
				Fixable:     true,
			})
		}
	case models.PlanData:
		var bad []string
		for date := range d.Records {
			if !isValidDate(date) {
				bad = append(bad, date)
			}
		}
		sort.Strings(bad)
		if len(bad) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Plan %q has records under invalid dates: %v", w.Title, bad),
				WidgetID:    w.ID,
				Items:       bad,
			})
		}
	case models.SeriesData:
		var dups, bad []string
		sorted := true
		for i, p := range d.Points {
			if !isValidDate(p.Date) {
				bad = append(bad, p.Date)
			}
			if i > 0 {
				switch {
				case p.Date == d.Points[i-1].Date:
					dups = append(dups, p.Date)
				case p.Date < d.Points[i-1].Date:
					sorted = false
				}
			}
		}
		if !sorted {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictUnsortedPoints,
				Description: fmt.Sprintf("Widget %q has points out of date order", w.Title),
				WidgetID:    w.ID,
				Fixable:     true,
			})
		}
		if len(dups) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicatePoints,
				Description: fmt.Sprintf("Widget %q has several points on %v", w.Title, dups),
				WidgetID:    w.ID,
				Items:       dups,
				Fixable:     true,
			})
		}
		if len(bad) > 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Widget %q has points with invalid dates: %v", w.Title, bad),
				WidgetID:    w.ID,
				Items:       bad,
			})
		}
	}
	return conflicts
}

func isValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
