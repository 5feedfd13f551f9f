package models

// Selection is an ordered set of IDs picked in selection mode.
type Selection struct {
	ids   []string
	index map[string]int
}

// NewSelection builds a selection from ids, ignoring duplicates.
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of selected IDs.
func (s Selection) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selected IDs in selection order.
func (s Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// With returns a copy of s including id.
func (s Selection) With(id string) Selection {
	if s.Has(id) {
		return s
	}
	next := Selection{ids: append(s.IDs(), id), index: make(map[string]int, len(s.ids)+1)}
	for i, v := range next.ids {
		next.index[v] = i
	}
	return next
}

// Toggle returns a copy of s with id added or removed.
func (s Selection) Toggle(id string) Selection {
	if !s.Has(id) {
		return s.With(id)
	}
	var next Selection
	for _, v := range s.ids {
		if v != id {
			next = next.With(v)
		}
	}
	return next
}
