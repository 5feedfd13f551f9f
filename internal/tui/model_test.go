package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/storage"
	"github.com/julianstephens/lifetracks/internal/tui/components/board"
	"github.com/julianstephens/lifetracks/internal/tui/components/detail"
	"github.com/julianstephens/lifetracks/internal/tui/components/notelist"
)

func setupModel(t *testing.T) (Model, *app.Controller, func()) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "lifetracks.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	gate := NewGate()
	ctrl := app.New(store, app.WithConfirmer(gate), app.WithDebounce(time.Millisecond))
	m := NewModel(ctrl, gate)
	return m, ctrl, func() { ctrl.Close() }
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGate_ConfirmsOnlyWhileArmed(t *testing.T) {
	g := NewGate()
	if g.Confirm("x") {
		t.Fatal("unarmed gate confirmed")
	}

	var inside []bool
	err := g.Run(func() error {
		inside = append(inside, g.Confirm("first"), g.Confirm("second"))
		return nil
	})
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if !inside[0] || inside[1] {
		t.Errorf("expected exactly one confirmation, got %v", inside)
	}
	if g.Confirm("after") {
		t.Error("gate stayed armed after Run")
	}
}

func TestModel_TabSwitchesView(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if ctrl.State().View != constants.SessionDashboard {
		t.Fatalf("expected dashboard view, got %v", ctrl.State().View)
	}
	if !strings.Contains(m.View(), "Dashboard") {
		t.Error("expected tabs in view")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if ctrl.State().View != constants.SessionNotes {
		t.Errorf("expected notes view, got %v", ctrl.State().View)
	}
}

func TestModel_CycleTagFilter(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	if _, err := ctrl.AddNote(richtext.ParseMarkup("run 5k #fitness")); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if _, err := ctrl.AddNote(richtext.ParseMarkup("nothing tagged")); err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	m = send(m, notelist.CycleTagMsg{})
	if got := ctrl.State().TagFilter; got != "fitness" {
		t.Fatalf("expected filter fitness, got %q", got)
	}
	if len(ctrl.VisibleNotes()) != 1 {
		t.Errorf("expected 1 visible note, got %d", len(ctrl.VisibleNotes()))
	}

	send(m, notelist.CycleTagMsg{})
	if got := ctrl.State().TagFilter; got != "" {
		t.Errorf("expected filter to wrap to all, got %q", got)
	}
}

func TestModel_OpenAndCloseWidget(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	w := ctrl.Snapshot().Widgets[0]
	m = send(m, board.OpenWidgetMsg{ID: w.ID})
	if m.mode != modeDetail {
		t.Fatalf("expected detail mode, got %v", m.mode)
	}
	if ctrl.State().ActiveWidget != w.ID {
		t.Errorf("expected active widget %s, got %s", w.ID, ctrl.State().ActiveWidget)
	}

	m = send(m, detail.CloseMsg{})
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode, got %v", m.mode)
	}
	if ctrl.State().ActiveWidget != "" {
		t.Error("widget still active after close")
	}
}

func TestModel_DeleteNoteAsksFirst(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	n, err := ctrl.AddNote(richtext.Plain("keep me"))
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	m = send(m, notelist.DeleteNoteMsg{ID: n.ID})
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	m = send(m, runeKey('n'))
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode after no, got %v", m.mode)
	}
	if len(ctrl.Snapshot().Notes) != 1 {
		t.Fatal("note deleted without confirmation")
	}

	m = send(m, notelist.DeleteNoteMsg{ID: n.ID})
	send(m, runeKey('y'))
	if len(ctrl.Snapshot().Notes) != 0 {
		t.Error("note not deleted after confirmation")
	}
}

func TestModel_DeleteSelectedWidgetsPassesGate(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	ws := ctrl.Snapshot().Widgets
	before := len(ws)
	ctrl.SetView(constants.SessionDashboard)
	ctrl.StartSelection()
	ctrl.ToggleSelected(ws[0].ID)
	ctrl.ToggleSelected(ws[1].ID)

	m = send(m, board.DeleteSelectedMsg{})
	if !strings.Contains(m.prompt, "2 selected widgets") {
		t.Errorf("unexpected prompt %q", m.prompt)
	}
	m = send(m, runeKey('y'))

	if got := len(ctrl.Snapshot().Widgets); got != before-2 {
		t.Fatalf("expected %d widgets, got %d", before-2, got)
	}
	if ctrl.State().Selecting {
		t.Error("selection mode should end after delete")
	}
	if m.statusIsErr {
		t.Errorf("unexpected error status %q", m.status)
	}
}

func TestModel_PickListItem(t *testing.T) {
	m, ctrl, cleanup := setupModel(t)
	defer cleanup()

	w, err := ctrl.AddWidget(models.WidgetList, ctrl.Snapshot().DashboardCats[0])
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	if err := ctrl.AddListItem(w.ID, "Dune", ""); err != nil {
		t.Fatalf("AddListItem: %v", err)
	}
	w, _ = ctrl.Widget(w.ID)

	m = send(m, detail.ActionMsg{Action: detail.ActPick, Widget: w})
	if m.statusIsErr || !strings.HasPrefix(m.status, "🎲 ") {
		t.Errorf("expected a pick in the status, got %q", m.status)
	}
}

func TestModel_ResultErrorShowsInStatus(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	m = send(m, resultMsg{err: errors.New("boom")})
	if !m.statusIsErr || m.status != "boom" {
		t.Errorf("expected error status, got %q (err=%v)", m.status, m.statusIsErr)
	}

	m = send(m, resultMsg{status: "Saved"})
	if m.statusIsErr || m.status != "Saved" {
		t.Errorf("expected ok status, got %q", m.status)
	}
}

func TestModel_QuitFlushes(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).quitting {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_DropsResultForRemovedTarget(t *testing.T) {
	m, _, cleanup := setupModel(t)
	defer cleanup()

	m = send(m, attachedMsg{what: "Image", err: app.ErrTargetGone})
	if m.statusIsErr || m.status != "" {
		t.Errorf("expected no status for a dropped result, got %q", m.status)
	}

	m = send(m, attachedMsg{what: "Image", err: errors.New("unsupported image")})
	if !m.statusIsErr {
		t.Error("expected other async errors to show")
	}
}
