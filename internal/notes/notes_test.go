package notes

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
)

var testNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func seed(t *testing.T, contents ...string) []models.Note {
	t.Helper()
	var list []models.Note
	for i, c := range contents {
		var err error
		list, _, err = Create(list, string(rune('a'+i)), richtext.Plain(c), testNow.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("failed to seed note %q: %v", c, err)
		}
	}
	return list
}

func TestCreatePrependsWithTags(t *testing.T) {
	list := seed(t, "first #生活", "second #Work2 #生活")
	if len(list) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(list))
	}
	if list[0].ID != "b" {
		t.Errorf("expected newest note first, got %s", list[0].ID)
	}
	if !reflect.DeepEqual(list[0].Tags, []string{"Work2", "生活"}) {
		t.Errorf("unexpected tags %v", list[0].Tags)
	}
}

func TestCreateRejectsBlank(t *testing.T) {
	list, _, err := Create(nil, "x", richtext.ParseHTML("<div> </div>"), testNow)
	if !errors.Is(err, ErrEmptyContent) || len(list) != 0 {
		t.Errorf("expected ErrEmptyContent and no note, got %v (%d notes)", err, len(list))
	}

	img := richtext.Image("data:image/png;base64,AAAA")
	list, n, err := Create(nil, "img", img, testNow)
	if err != nil || len(list) != 1 || len(n.Tags) != 0 {
		t.Errorf("expected image-only note to be created, got %v", err)
	}
}

func TestUpdateRecomputesTags(t *testing.T) {
	list := seed(t, "old #a")
	created := list[0].CreatedAt

	updated, err := Update(list, "a", richtext.Plain("new #b #c"))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !reflect.DeepEqual(updated[0].Tags, []string{"b", "c"}) {
		t.Errorf("expected tags [b c], got %v", updated[0].Tags)
	}
	if !updated[0].CreatedAt.Equal(created.Time) || updated[0].ID != "a" {
		t.Error("update must keep id and createdAt")
	}
	if !reflect.DeepEqual(list[0].Tags, []string{"a"}) {
		t.Error("update must not mutate the input slice")
	}

	if _, err := Update(list, "missing", richtext.Plain("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndBulkDelete(t *testing.T) {
	list := seed(t, "1", "2", "3")

	out, err := Delete(list, "b")
	if err != nil || len(out) != 2 {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := BulkDelete(list, models.Selection{}); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
	out, err = BulkDelete(list, models.NewSelection("a", "c"))
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "b" {
		t.Errorf("expected only note b to remain, got %+v", out)
	}
}

func TestFilterByTag(t *testing.T) {
	list := seed(t, "#read book", "#reading list", "#read again")

	if got := FilterByTag(list, ""); len(got) != 3 {
		t.Errorf("empty filter should return all notes, got %d", len(got))
	}
	got := FilterByTag(list, "read")
	if len(got) != 2 {
		t.Errorf("expected exact match on 2 notes, got %d", len(got))
	}
}

func TestRecentTags(t *testing.T) {
	list := seed(t, "#a #b #c #d #e", "#f #g #h #i #a")
	recent := RecentTags(list, 8)
	if !reflect.DeepEqual(recent, []string{"f", "g", "h", "i", "a", "b", "c", "d"}) {
		t.Errorf("unexpected recent tags %v", recent)
	}
	if all := AllTags(list); len(all) != 9 {
		t.Errorf("expected 9 distinct tags, got %v", all)
	}
}

func TestMoveToNotebook(t *testing.T) {
	list := seed(t, "keep", "move #x", "move too")
	existing := models.NotebookItem{ID: "old", Content: richtext.Plain("old"), Tags: []string{}}
	widgets := []models.Widget{
		models.NewWidget("l", models.WidgetList, "", testNow),
		{ID: "nb", Type: models.WidgetNote, Title: "nb", Data: models.NotebookData{Items: []models.NotebookItem{existing}}},
		models.NewWidget("nb2", models.WidgetNote, "", testNow),
	}

	outNotes, outWidgets, err := MoveToNotebook(list, widgets, models.NewSelection("b", "c"))
	if err != nil {
		t.Fatalf("MoveToNotebook failed: %v", err)
	}
	if len(outNotes) != 1 || outNotes[0].ID != "a" {
		t.Errorf("expected only note a to remain, got %+v", outNotes)
	}

	items := outWidgets[1].Data.(models.NotebookData).Items
	if len(items) != 3 {
		t.Fatalf("expected 3 notebook items, got %d", len(items))
	}
	if items[0].ID != "c" || items[1].ID != "b" || items[2].ID != "old" {
		t.Errorf("expected moved notes prepended in note order, got %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
	if !items[1].CreatedAt.Equal(list[1].CreatedAt.Time) || !reflect.DeepEqual(items[1].Tags, []string{"x"}) {
		t.Error("moved items must keep createdAt and tags")
	}
	if len(outWidgets[2].Data.(models.NotebookData).Items) != 0 {
		t.Error("only the first notebook widget receives notes")
	}
	if len(widgets[1].Data.(models.NotebookData).Items) != 1 {
		t.Error("input widgets must not be mutated")
	}
}

func TestMoveToNotebookWithoutNotebook(t *testing.T) {
	list := seed(t, "one", "two")
	widgets := models.DefaultWidgets(testNow)

	outNotes, outWidgets, err := MoveToNotebook(list, widgets, models.NewSelection("a"))
	if !errors.Is(err, ErrNotebookMissing) {
		t.Fatalf("expected ErrNotebookMissing, got %v", err)
	}
	if !reflect.DeepEqual(outNotes, list) {
		t.Error("note list must be unchanged")
	}
	if len(outWidgets) != len(widgets) {
		t.Error("widgets must be unchanged")
	}
}
