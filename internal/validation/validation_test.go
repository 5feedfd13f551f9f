package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func countType(result ValidationResult, ct ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

func TestValidateSnapshot_DefaultsAreClean(t *testing.T) {
	result := New().ValidateSnapshot(models.DefaultSnapshot(now))
	if result.HasConflicts() {
		t.Fatalf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report %q", result.FormatReport())
	}
}

func TestValidateSnapshot_DuplicateIDs(t *testing.T) {
	snap := models.DefaultSnapshot(now)
	snap.Widgets = append(snap.Widgets, models.NewWidget("w1", models.WidgetNote, "记录", now))
	snap.Notes = []models.Note{
		{ID: "n1", Content: richtext.Plain("a"), Tags: []string{}},
		{ID: "n1", Content: richtext.Plain("b"), Tags: []string{}},
	}

	result := New().ValidateSnapshot(snap)
	if got := countType(result, ConflictDuplicateID); got != 2 {
		t.Fatalf("expected 2 duplicate ID conflicts, got %d", got)
	}
	if !strings.Contains(result.FormatReport(), "Duplicate widget IDs: [w1]") {
		t.Errorf("report missing widget duplicate:\n%s", result.FormatReport())
	}
}

func TestValidateSnapshot_OrphanedWidgetAndItems(t *testing.T) {
	snap := models.DefaultSnapshot(now)
	snap.DashboardCats = []string{"时间", "清单", "计划"} // 记录 removed
	list := snap.Widgets[0]
	d := list.Data.(models.ListData)
	d.Categories = []string{"小说"}
	list.Data = d
	snap.Widgets[0] = list

	result := New().ValidateSnapshot(snap)
	if got := countType(result, ConflictOrphanedWidget); got != 2 {
		t.Errorf("expected 2 orphaned widgets (w2, w6), got %d", got)
	}
	if got := countType(result, ConflictOrphanedItems); got != 1 {
		t.Errorf("expected 1 orphaned items conflict, got %d", got)
	}
}

func TestValidateSnapshot_InvalidDates(t *testing.T) {
	snap := models.DefaultSnapshot(now)
	for i, w := range snap.Widgets {
		switch d := w.Data.(type) {
		case models.CountdownData:
			d.TargetDate = "2024-13-01"
			snap.Widgets[i].Data = d
		case models.PlanData:
			d.Records = models.PlanRecords{"yesterday": {"q1": "x"}, "2024-05-09": {"q1": "y"}}
			snap.Widgets[i].Data = d
		}
	}

	result := New().ValidateSnapshot(snap)
	if got := countType(result, ConflictInvalidDate); got != 2 {
		t.Fatalf("expected 2 invalid date conflicts, got %d:\n%s", got, result.FormatReport())
	}
	for _, c := range result.Conflicts {
		if c.Fixable {
			t.Errorf("invalid dates should not be auto-fixable: %s", c.Description)
		}
	}
}

func TestValidateSnapshot_MultipleNotebooks(t *testing.T) {
	snap := models.DefaultSnapshot(now)
	snap.Widgets = append(snap.Widgets,
		models.NewWidget("nb1", models.WidgetNote, "记录", now),
		models.NewWidget("nb2", models.WidgetNote, "记录", now),
	)
	result := New().ValidateSnapshot(snap)
	if got := countType(result, ConflictMultipleNotebooks); got != 1 {
		t.Errorf("expected multiple notebook conflict, got %d", got)
	}
}

func messySnapshot() models.Snapshot {
	snap := models.DefaultSnapshot(now)
	snap.Notes = []models.Note{
		{ID: "n1", Content: richtext.Plain("hello #work"), Tags: []string{"old"}},
		{ID: "n2", Content: richtext.Plain("plain"), Tags: []string{}},
	}
	for i, w := range snap.Widgets {
		switch d := w.Data.(type) {
		case models.RatingData:
			d.Items = append(d.Items, models.RatingItem{ID: "2", Title: "x", Rating: 7.2, Category: "电影"})
			snap.Widgets[i].Data = d
		case models.LastDoneData:
			for j := 0; j < 25; j++ {
				d.History = append(d.History, models.NewTimestamp(now.Add(-time.Duration(j)*time.Hour)))
			}
			snap.Widgets[i].Data = d
		case models.SeriesData:
			d.Points = []models.DataPoint{
				{Date: "2023-01-08", Value: 74.5},
				{Date: "2023-01-01", Value: 75},
				{Date: "2023-01-08", Value: 74.0},
			}
			snap.Widgets[i].Data = d
		}
	}
	return snap
}

func TestValidateSnapshot_FixableConflicts(t *testing.T) {
	result := New().ValidateSnapshot(messySnapshot())

	for _, ct := range []ConflictType{
		ConflictStaleTags, ConflictRatingOutOfRange, ConflictHistoryTooLong, ConflictUnsortedPoints,
	} {
		if got := countType(result, ct); got != 1 {
			t.Errorf("expected 1 %s conflict, got %d", ct, got)
		}
	}
	// The duplicate 2023-01-08 entries are not adjacent, so only ordering is reported
	if got := countType(result, ConflictDuplicatePoints); got != 0 {
		t.Errorf("expected no adjacent duplicate points, got %d", got)
	}
}

func TestAutoFix(t *testing.T) {
	snap := messySnapshot()
	result := New().ValidateSnapshot(snap)

	fixed, dirty, actions := AutoFix(snap, result.Conflicts)
	if len(actions) != 4 {
		t.Fatalf("expected 4 fix actions, got %d: %v", len(actions), actions)
	}
	if !dirty.Has(models.SlotNotes) || !dirty.Has(models.SlotWidgets) {
		t.Errorf("expected notes and widgets dirty, got %b", dirty)
	}

	after := New().ValidateSnapshot(fixed)
	if after.HasConflicts() {
		t.Fatalf("expected clean snapshot after fix, got:\n%s", after.FormatReport())
	}

	if got := fixed.Notes[0].Tags; len(got) != 1 || got[0] != "work" {
		t.Errorf("expected tags [work], got %v", got)
	}
	w6, _ := fixed.FindWidget("w6")
	points := w6.Data.(models.SeriesData).Points
	if len(points) != 2 || points[1].Value != 74.0 {
		t.Errorf("expected later duplicate to win, got %v", points)
	}
	w2, _ := fixed.FindWidget("w2")
	if r := w2.Data.(models.RatingData).Items[1].Rating; r != 5 {
		t.Errorf("expected rating clamped to 5, got %v", r)
	}

	// The input snapshot is untouched
	if snap.Notes[0].Tags[0] != "old" {
		t.Error("AutoFix modified the input notes")
	}
	orig, _ := snap.FindWidget("w4")
	if len(orig.Data.(models.LastDoneData).History) != 25 {
		t.Error("AutoFix modified the input history")
	}
}

func TestAutoFix_SkipsUnfixable(t *testing.T) {
	snap := models.DefaultSnapshot(now)
	conflicts := []Conflict{{Type: ConflictInvalidDate, WidgetID: "w3", Description: "bad"}}
	_, dirty, actions := AutoFix(snap, conflicts)
	if dirty != models.SlotNone || len(actions) != 0 {
		t.Errorf("expected nothing fixed, got dirty=%b actions=%v", dirty, actions)
	}
}
