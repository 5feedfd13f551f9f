package app

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/tags"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// ErrTargetGone is passed to async callbacks whose note, widget or item was
// removed before the result arrived. The result is discarded.
var ErrTargetGone = errors.New("target no longer exists")

func (c *Controller) goAsync(fn func()) {
	c.async.Add(1)
	go func() {
		defer c.async.Done()
		fn()
	}()
}

func notify(done func(error), err error) {
	if done != nil {
		done(err)
	}
}

// AttachNoteImage encodes r in the background and appends the image to the
// note. done, if set, receives the outcome.
func (c *Controller) AttachNoteImage(noteID string, r io.Reader, done func(error)) {
	c.goAsync(func() {
		url, err := richtext.EncodeImage(r)
		if err != nil {
			notify(done, err)
			return
		}
		err = c.update(func(s *models.Snapshot) (models.Slot, error) {
			n, ok := s.FindNote(noteID)
			if !ok {
				return models.SlotNone, ErrTargetGone
			}
			content := richtext.Concat(n.Content, richtext.Image(url))
			idx := slices.IndexFunc(s.Notes, func(x models.Note) bool { return x.ID == noteID })
			list := slices.Clone(s.Notes)
			list[idx].Content = content
			s.Notes = list
			return models.SlotNotes, nil
		})
		if errors.Is(err, ErrTargetGone) {
			logger.Warn("Dropping encoded image for removed note", "note", noteID)
		}
		notify(done, err)
	})
}

// SetRatingCover encodes r in the background and stores it as the item's cover.
func (c *Controller) SetRatingCover(widgetID, itemID string, r io.Reader, done func(error)) {
	c.goAsync(func() {
		url, err := richtext.EncodeImage(r)
		if err != nil {
			notify(done, err)
			return
		}
		err = c.editWidget(widgetID, func(w models.Widget) (models.Widget, error) {
			d, ok := w.Data.(models.RatingData)
			if !ok {
				return w, ErrTargetGone
			}
			idx := slices.IndexFunc(d.Items, func(it models.RatingItem) bool { return it.ID == itemID })
			if idx < 0 {
				return w, ErrTargetGone
			}
			d.Items = slices.Clone(d.Items)
			d.Items[idx].Cover = url
			w.Data = d
			return w, nil
		})
		if errors.Is(err, widgets.ErrWidgetNotFound) {
			err = ErrTargetGone
		}
		if errors.Is(err, ErrTargetGone) {
			logger.Warn("Dropping encoded cover for removed item", "widget", widgetID, "item", itemID)
		}
		notify(done, err)
	})
}

// SuggestTags asks the collaborator for tags for a note and appends the ones
// the note lacks. done receives the tags that were added.
func (c *Controller) SuggestTags(ctx context.Context, noteID string, done func([]string, error)) {
	n, ok := c.Snapshot().FindNote(noteID)
	if !ok {
		if done != nil {
			done(nil, ErrTargetGone)
		}
		return
	}
	text := n.Content.PlainText()
	c.goAsync(func() {
		suggested := c.ai.SuggestTags(ctx, text)
		var added []string
		err := c.update(func(s *models.Snapshot) (models.Slot, error) {
			cur, ok := s.FindNote(noteID)
			if !ok {
				return models.SlotNone, ErrTargetGone
			}
			content := cur.Content
			for _, raw := range suggested {
				t := tags.Normalize(raw)
				if t == "" || slices.Contains(cur.Tags, t) || slices.Contains(added, t) {
					continue
				}
				content = richtext.AppendTag(content, t)
				added = append(added, t)
			}
			if len(added) == 0 {
				return models.SlotNone, nil
			}
			idx := slices.IndexFunc(s.Notes, func(x models.Note) bool { return x.ID == noteID })
			list := slices.Clone(s.Notes)
			list[idx].Content = content
			list[idx].Tags = tags.FromDocument(content)
			s.Notes = list
			return models.SlotNotes, nil
		})
		if errors.Is(err, ErrTargetGone) {
			logger.Warn("Dropping tag suggestions for removed note", "note", noteID)
			added = nil
		}
		if done != nil {
			done(added, err)
		}
	})
}

// AnalyzeTrend asks the collaborator about a DATA widget's recent points.
// The sentence is delivered only if the widget still exists.
func (c *Controller) AnalyzeTrend(ctx context.Context, widgetID string, done func(string, error)) {
	w, err := c.Widget(widgetID)
	if err != nil {
		if done != nil {
			done("", err)
		}
		return
	}
	d, ok := w.Data.(models.SeriesData)
	if !ok {
		if done != nil {
			done("", widgets.ErrWrongType)
		}
		return
	}
	c.goAsync(func() {
		text := c.ai.AnalyzeTrend(ctx, d.Label, d.Unit, d.Points)
		if _, err := c.Widget(widgetID); err != nil {
			logger.Warn("Dropping trend analysis for removed widget", "widget", widgetID)
			if done != nil {
				done("", ErrTargetGone)
			}
			return
		}
		if done != nil {
			done(text, nil)
		}
	})
}
