// Package notes implements quick-note CRUD, tag filtering and the move of
// notes into a notebook widget. Every function returns new slices and never
// mutates its inputs.
package notes

import (
	"fmt"
	"time"

	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/tags"
)

var (
	ErrEmptyContent    = apperr.NewValidation("note is empty")
	ErrNotFound        = apperr.NewValidation("note not found")
	ErrEmptySelection  = apperr.NewValidation("no notes selected")
	ErrNotebookMissing = apperr.NewValidation("no notebook widget exists; add a NOTE widget first")
)

// Create prepends a note built from content. Content with no visible text and
// no image is rejected.
func Create(list []models.Note, id string, content richtext.Document, now time.Time) ([]models.Note, models.Note, error) {
	if content.IsBlank() {
		return list, models.Note{}, ErrEmptyContent
	}
	n := models.Note{
		ID:        id,
		Content:   content,
		Tags:      tags.FromDocument(content),
		CreatedAt: models.NewTimestamp(now),
	}
	out := make([]models.Note, 0, len(list)+1)
	out = append(out, n)
	out = append(out, list...)
	return out, n, nil
}

// Update replaces a note's content and recomputes its tags. ID and creation
// time are kept.
func Update(list []models.Note, id string, content richtext.Document) ([]models.Note, error) {
	if content.IsBlank() {
		return list, ErrEmptyContent
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return list, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := append([]models.Note(nil), list...)
	out[idx].Content = content
	out[idx].Tags = tags.FromDocument(content)
	return out, nil
}

// Delete removes one note.
func Delete(list []models.Note, id string) ([]models.Note, error) {
	if indexOf(list, id) < 0 {
		return list, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return without(list, models.NewSelection(id)), nil
}

// BulkDelete removes every selected note. Confirmation is the caller's job.
func BulkDelete(list []models.Note, sel models.Selection) ([]models.Note, error) {
	if sel.IsEmpty() {
		return list, ErrEmptySelection
	}
	return without(list, sel), nil
}

// FilterByTag returns notes carrying tag exactly. An empty tag means all notes.
func FilterByTag(list []models.Note, tag string) []models.Note {
	if tag == "" {
		return list
	}
	var out []models.Note
	for _, n := range list {
		if tags.Contains(n.Tags, tag) {
			out = append(out, n)
		}
	}
	return out
}

// AllTags returns every distinct tag in note order.
func AllTags(list []models.Note) []string {
	lists := make([][]string, 0, len(list))
	for _, n := range list {
		lists = append(lists, n.Tags)
	}
	return tags.Unique(lists...)
}

// RecentTags returns the first limit distinct tags, newest notes first.
func RecentTags(list []models.Note, limit int) []string {
	lists := make([][]string, 0, len(list))
	for _, n := range list {
		lists = append(lists, n.Tags)
	}
	return tags.Recent(lists, limit)
}

// MoveToNotebook moves the selected notes into the first NOTE widget,
// prepending them in note order. Without a NOTE widget nothing changes.
func MoveToNotebook(list []models.Note, widgets []models.Widget, sel models.Selection) ([]models.Note, []models.Widget, error) {
	if sel.IsEmpty() {
		return list, widgets, ErrEmptySelection
	}
	target := -1
	for i, w := range widgets {
		if w.Type == models.WidgetNote {
			target = i
			break
		}
	}
	if target < 0 {
		return list, widgets, ErrNotebookMissing
	}

	var moved []models.NotebookItem
	for _, n := range list {
		if sel.Has(n.ID) {
			moved = append(moved, models.NotebookItem(n))
		}
	}
	if len(moved) == 0 {
		return list, widgets, ErrEmptySelection
	}

	nb, ok := widgets[target].Data.(models.NotebookData)
	if !ok {
		return list, widgets, fmt.Errorf("widget %s has %T data", widgets[target].ID, widgets[target].Data)
	}
	items := make([]models.NotebookItem, 0, len(moved)+len(nb.Items))
	items = append(items, moved...)
	items = append(items, nb.Items...)

	outWidgets := append([]models.Widget(nil), widgets...)
	outWidgets[target].Data = models.NotebookData{Items: items}
	return without(list, sel), outWidgets, nil
}

func indexOf(list []models.Note, id string) int {
	for i, n := range list {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func without(list []models.Note, sel models.Selection) []models.Note {
	out := make([]models.Note, 0, len(list))
	for _, n := range list {
		if !sel.Has(n.ID) {
			out = append(out, n)
		}
	}
	return out
}
