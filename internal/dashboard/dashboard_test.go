package dashboard

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

var testNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func TestCategoryCRUD(t *testing.T) {
	cats := models.DefaultDashboardCategories()

	if _, err := AddCategory(cats, "计划"); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}
	if _, err := AddCategory(cats, " "); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("expected ErrEmptyCategory, got %v", err)
	}
	cats, err := AddCategory(cats, "旅行")
	if err != nil {
		t.Fatal(err)
	}
	if cats[len(cats)-1] != "旅行" {
		t.Errorf("expected new category appended, got %v", cats)
	}

	if _, err := RenameCategory(cats, "旅行", ""); !errors.Is(err, ErrRenameToEmpty) {
		t.Errorf("expected ErrRenameToEmpty, got %v", err)
	}
	renamed, err := RenameCategory(cats, "旅行", "出行")
	if err != nil {
		t.Fatal(err)
	}
	if renamed[len(renamed)-1] != "出行" || cats[len(cats)-1] != "旅行" {
		t.Errorf("rename should copy the list, got %v / %v", renamed, cats)
	}

	deleted, err := DeleteCategory(renamed, "出行")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(deleted, models.DefaultDashboardCategories()) {
		t.Errorf("unexpected categories %v", deleted)
	}
}

func TestDeleteCategoryOrphansWidgets(t *testing.T) {
	cats := models.DefaultDashboardCategories()
	list := models.DefaultWidgets(testNow)

	cats, err := DeleteCategory(cats, "时间")
	if err != nil {
		t.Fatal(err)
	}
	orphans := Orphans(cats, list)
	if len(orphans) != 2 || orphans[0].ID != "w3" || orphans[1].ID != "w4" {
		t.Errorf("expected w3 and w4 orphaned, got %v", orphans)
	}
	for _, r := range Rows(cats, list) {
		for _, w := range r.Widgets {
			if w.DashboardCategory == "时间" {
				t.Errorf("orphaned widget %s shown in row %s", w.ID, r.Category)
			}
		}
	}
}

func TestAddWidgetDefaultCategory(t *testing.T) {
	cats := models.DefaultDashboardCategories()
	list, w, err := AddWidget(nil, cats, "x", models.WidgetNote, "", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if w.DashboardCategory != "时间" || w.Title != "新笔记" {
		t.Errorf("unexpected widget %+v", w)
	}
	if len(list) != 1 {
		t.Errorf("expected widget appended")
	}

	_, w, err = AddWidget(nil, nil, "y", models.WidgetCountdown, "", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if w.DashboardCategory != "Default" || w.Color != "#34d399" {
		t.Errorf("unexpected widget %+v", w)
	}

	if _, _, err := AddWidget(nil, cats, "z", models.WidgetType("CLOCK"), "", testNow); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestAddWidgetUnknownCategory(t *testing.T) {
	cats := []string{"时间"}
	list, _, err := AddWidget(nil, cats, "x", models.WidgetList, "Nope", testNow)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no widget added, got %d", len(list))
	}

	_, w, err := AddWidget(nil, cats, "y", models.WidgetList, " 时间 ", testNow)
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	if w.DashboardCategory != "时间" {
		t.Errorf("expected category 时间, got %q", w.DashboardCategory)
	}
}

func TestMoveAndDeleteWidgets(t *testing.T) {
	cats := models.DefaultDashboardCategories()
	list := models.DefaultWidgets(testNow)
	sel := models.NewSelection("w1", "w6")

	if _, err := MoveWidgets(list, cats, sel, "nowhere"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	moved, err := MoveWidgets(list, cats, sel, "计划")
	if err != nil {
		t.Fatal(err)
	}
	if got := Grid(moved, "计划"); len(got) != 3 {
		t.Errorf("expected 3 widgets in 计划, got %d", len(got))
	}
	if list[0].DashboardCategory != "清单" {
		t.Errorf("input list was mutated")
	}

	if _, err := DeleteWidgets(list, models.NewSelection()); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
	remaining, err := DeleteWidgets(list, sel)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 4 {
		t.Errorf("expected 4 widgets left, got %d", len(remaining))
	}
}

func TestPresentationFor(t *testing.T) {
	want := map[models.WidgetType]Presentation{
		models.WidgetList:      Fullscreen,
		models.WidgetRating:    Fullscreen,
		models.WidgetPlan:      Fullscreen,
		models.WidgetNote:      Fullscreen,
		models.WidgetCountdown: Dialog,
		models.WidgetLastDone:  Dialog,
		models.WidgetSeries:    Dialog,
	}
	for typ, p := range want {
		if got := PresentationFor(typ); got != p {
			t.Errorf("%s: expected %s, got %s", typ, p, got)
		}
	}
}

func TestPreview(t *testing.T) {
	list := models.DefaultWidgets(testNow)
	cards := map[string]Card{}
	for _, w := range list {
		cards[w.ID] = Preview(w, testNow)
	}

	if c := cards["w1"]; c.Headline != "1 open" || c.Detail != "了不起的盖茨比" {
		t.Errorf("unexpected list card %+v", c)
	}
	if c := cards["w2"]; c.Headline != "1 rated" || c.Detail != "沙丘2 ★★★★½" {
		t.Errorf("unexpected rating card %+v", c)
	}
	if c := cards["w3"]; c.Headline != "228 days until" || c.Detail != "日本旅行" {
		t.Errorf("unexpected countdown card %+v", c)
	}
	if c := cards["w4"]; c.Headline != "3 days ago" || c.Alert {
		t.Errorf("unexpected last done card %+v", c)
	}
	if c := cards["w5"]; c.Headline != "0%" {
		t.Errorf("unexpected plan card %+v", c)
	}
	if c := cards["w6"]; c.Headline != "73.5 kg" || len(c.Spark) != 5 {
		t.Errorf("unexpected data card %+v", c)
	}
	if cards["w3"].Accent != "#34d399" {
		t.Errorf("accent not carried onto card")
	}
}

func TestPreviewNotebook(t *testing.T) {
	w := models.NewWidget("n", models.WidgetNote, "", testNow)
	if c := Preview(w, testNow); c.Headline != "0 notes" || c.Detail != "" {
		t.Errorf("unexpected empty notebook card %+v", c)
	}
	w, err := widgets.AddNotebookItem(w, "1", richtext.Plain("hello   world #x"), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if c := Preview(w, testNow); c.Headline != "1 note" || c.Detail != "hello world #x" {
		t.Errorf("unexpected notebook card %+v", c)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("abcdef", 4); got != "abc…" {
		t.Errorf("unexpected snippet %q", got)
	}
	if got := Snippet(" a \n b ", 10); got != "a b" {
		t.Errorf("unexpected snippet %q", got)
	}
}
