package models

// Snapshot is the persisted state tree. It is also the shape of a backup
// document.
type Snapshot struct {
	Notes         []Note   `json:"notes"`
	Widgets       []Widget `json:"widgets"`
	DashboardCats []string `json:"dashboardCats"`
	ThemeColor    string   `json:"themeColor"`
}

// Slot names one independently stored part of a Snapshot.
type Slot int

const (
	SlotNotes Slot = 1 << iota
	SlotWidgets
	SlotDashboardCats
	SlotTheme

	SlotNone Slot = 0
	SlotAll       = SlotNotes | SlotWidgets | SlotDashboardCats | SlotTheme
)

// Has reports whether s includes o.
func (s Slot) Has(o Slot) bool {
	return s&o != 0
}

// FindWidget returns the widget with the given id.
func (s Snapshot) FindWidget(id string) (Widget, bool) {
	for _, w := range s.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// FindNote returns the note with the given id.
func (s Snapshot) FindNote(id string) (Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Normalized replaces nil collections with empty ones so the tree encodes
// as [] rather than null.
func (s Snapshot) Normalized() Snapshot {
	if s.Notes == nil {
		s.Notes = []Note{}
	}
	if s.Widgets == nil {
		s.Widgets = []Widget{}
	}
	if s.DashboardCats == nil {
		s.DashboardCats = []string{}
	}
	return s
}
