package widgets

import (
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/notes"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/tags"
)

// Notebook items share the note engine; these helpers scope it to one widget.

func notebookData(w models.Widget, op string) (models.NotebookData, error) {
	d, ok := w.Data.(models.NotebookData)
	if !ok {
		return d, wrongType(w, op)
	}
	return d, nil
}

func asNotes(items []models.NotebookItem) []models.Note {
	out := make([]models.Note, len(items))
	for i, it := range items {
		out[i] = models.Note(it)
	}
	return out
}

func asItems(list []models.Note) []models.NotebookItem {
	out := make([]models.NotebookItem, len(list))
	for i, n := range list {
		out[i] = models.NotebookItem(n)
	}
	return out
}

func mapNoteErr(err error) error {
	switch {
	case errors.Is(err, notes.ErrEmptyContent):
		return ErrEmptyContent
	case errors.Is(err, notes.ErrNotFound):
		return ErrItemNotFound
	}
	return err
}

// AddNotebookItem prepends an item built from content.
func AddNotebookItem(w models.Widget, id string, content richtext.Document, now time.Time) (models.Widget, error) {
	d, err := notebookData(w, "add item")
	if err != nil {
		return w, err
	}
	list, _, err := notes.Create(asNotes(d.Items), id, content, now)
	if err != nil {
		return w, mapNoteErr(err)
	}
	d.Items = asItems(list)
	w.Data = d
	return w, nil
}

func EditNotebookItem(w models.Widget, id string, content richtext.Document) (models.Widget, error) {
	d, err := notebookData(w, "edit item")
	if err != nil {
		return w, err
	}
	list, err := notes.Update(asNotes(d.Items), id, content)
	if err != nil {
		return w, mapNoteErr(err)
	}
	d.Items = asItems(list)
	w.Data = d
	return w, nil
}

func DeleteNotebookItem(w models.Widget, id string) (models.Widget, error) {
	d, err := notebookData(w, "delete item")
	if err != nil {
		return w, err
	}
	list, err := notes.Delete(asNotes(d.Items), id)
	if err != nil {
		return w, mapNoteErr(err)
	}
	d.Items = asItems(list)
	w.Data = d
	return w, nil
}

// SearchNotebook keeps items whose text or any tag contains query, ignoring
// case. A blank query returns every item.
func SearchNotebook(d models.NotebookData, query string) []models.NotebookItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.Items
	}
	var out []models.NotebookItem
	for _, it := range d.Items {
		if strings.Contains(strings.ToLower(it.Content.PlainText()), q) || tagMatches(it.Tags, q) {
			out = append(out, it)
		}
	}
	return out
}

func tagMatches(list []string, q string) bool {
	for _, t := range list {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// NotebookTags returns the first n unique tags across the notebook.
func NotebookTags(d models.NotebookData, n int) []string {
	lists := make([][]string, len(d.Items))
	for i, it := range d.Items {
		lists[i] = it.Tags
	}
	return tags.Recent(lists, n)
}
