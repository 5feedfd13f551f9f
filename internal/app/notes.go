package app

import (
	"fmt"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/notes"
	"github.com/julianstephens/lifetracks/internal/richtext"
)

// AddNote creates a note from content and prepends it.
func (c *Controller) AddNote(content richtext.Document) (models.Note, error) {
	var created models.Note
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, n, err := notes.Create(s.Notes, c.newID(), content, c.now())
		if err != nil {
			return models.SlotNone, err
		}
		s.Notes, created = list, n
		return models.SlotNotes, nil
	})
	return created, err
}

func (c *Controller) EditNote(id string, content richtext.Document) error {
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, err := notes.Update(s.Notes, id, content)
		if err != nil {
			return models.SlotNone, err
		}
		s.Notes = list
		return models.SlotNotes, nil
	})
}

func (c *Controller) DeleteNote(id string) error {
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, err := notes.Delete(s.Notes, id)
		if err != nil {
			return models.SlotNone, err
		}
		s.Notes = list
		return models.SlotNotes, nil
	})
}

// DeleteNotes removes the selected notes after confirmation.
func (c *Controller) DeleteNotes(sel models.Selection) error {
	if sel.IsEmpty() {
		return notes.ErrEmptySelection
	}
	if err := c.confirmed(fmt.Sprintf("Delete %d selected notes?", sel.Len())); err != nil {
		return err
	}
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, err := notes.BulkDelete(s.Notes, sel)
		if err != nil {
			return models.SlotNone, err
		}
		s.Notes = list
		return models.SlotNotes, nil
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

// MoveNotesToNotebook moves the selected notes into the notebook widget. It
// fails without touching anything when no NOTE widget exists.
func (c *Controller) MoveNotesToNotebook(sel models.Selection) error {
	if sel.IsEmpty() {
		return notes.ErrEmptySelection
	}
	if err := c.confirmed(fmt.Sprintf("Move %d selected notes to the notebook?", sel.Len())); err != nil {
		return err
	}
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, ws, err := notes.MoveToNotebook(s.Notes, s.Widgets, sel)
		if err != nil {
			return models.SlotNone, err
		}
		s.Notes, s.Widgets = list, ws
		return models.SlotNotes | models.SlotWidgets, nil
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

// SetTagFilter narrows the notes view to one tag; "" shows everything.
func (c *Controller) SetTagFilter(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.TagFilter = tag
}

// VisibleNotes returns the notes passing the tag filter.
func (c *Controller) VisibleNotes() []models.Note {
	st := c.State()
	return notes.FilterByTag(st.Snapshot.Notes, st.TagFilter)
}

// RecentTags returns the composer's tag shortcuts.
func (c *Controller) RecentTags() []string {
	return notes.RecentTags(c.Snapshot().Notes, constants.RecentTagLimit)
}

// AllTags returns every tag for the filter bar.
func (c *Controller) AllTags() []string {
	return notes.AllTags(c.Snapshot().Notes)
}
