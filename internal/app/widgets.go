package app

import (
	"fmt"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// editWidget applies fn to widget id and saves the widget list.
func (c *Controller) editWidget(id string, fn func(models.Widget) (models.Widget, error)) error {
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		w, err := widgets.Find(s.Widgets, id)
		if err != nil {
			return models.SlotNone, err
		}
		if w, err = fn(w); err != nil {
			return models.SlotNone, err
		}
		if s.Widgets, err = widgets.Replace(s.Widgets, w); err != nil {
			return models.SlotNone, err
		}
		return models.SlotWidgets, nil
	})
}

// Widget returns the widget with id.
func (c *Controller) Widget(id string) (models.Widget, error) {
	return widgets.Find(c.Snapshot().Widgets, id)
}

func (c *Controller) SetWidgetTitle(id, title string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.SetTitle(w, title)
	})
}

func (c *Controller) SetWidgetColor(id, color string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.SetColor(w, color)
	})
}

// Item categories (LIST and RATING tabs)

func (c *Controller) AddItemCategory(id, name string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddCategory(w, name)
	})
}

func (c *Controller) RenameItemCategory(id, oldName, newName string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.RenameCategory(w, oldName, newName)
	})
}

func (c *Controller) RemoveItemCategory(id, name string) error {
	if err := c.confirmed(fmt.Sprintf("Remove tab %q? Its items are kept.", name)); err != nil {
		return err
	}
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.RemoveCategory(w, name)
	})
}

// DeleteWidgetItems removes selected items of a LIST, RATING or NOTE widget
// after confirmation.
func (c *Controller) DeleteWidgetItems(id string, sel models.Selection) error {
	if sel.IsEmpty() {
		return widgets.ErrEmptySelection
	}
	if err := c.confirmed(fmt.Sprintf("Delete %d selected items?", sel.Len())); err != nil {
		return err
	}
	err := c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeleteItems(w, sel)
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

func (c *Controller) MoveWidgetItems(id string, sel models.Selection, category string) error {
	err := c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.MoveItems(w, sel, category)
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

// LIST

func (c *Controller) AddListItem(id, title, category string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddListItem(w, c.newID(), title, category)
	})
}

func (c *Controller) EditListItem(id, itemID, title string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.EditListItem(w, itemID, title)
	})
}

func (c *Controller) ToggleListItem(id, itemID string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.ToggleComplete(w, itemID)
	})
}

func (c *Controller) StarListItem(id, itemID string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.ToggleStar(w, itemID)
	})
}

func (c *Controller) DeleteListItem(id, itemID string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeleteListItem(w, itemID)
	})
}

// PickListItem draws a random incomplete item from category.
func (c *Controller) PickListItem(id, category string) (models.PlaylistItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, err := widgets.Find(c.state.Snapshot.Widgets, id)
	if err != nil {
		return models.PlaylistItem{}, err
	}
	d, ok := w.Data.(models.ListData)
	if !ok {
		return models.PlaylistItem{}, widgets.ErrWrongType
	}
	return widgets.RandomListItem(d, category, c.rng)
}

// RATING

func (c *Controller) AddRatingItem(id string, in widgets.RatingInput) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddRatingItem(w, c.newID(), in)
	})
}

func (c *Controller) EditRatingItem(id, itemID string, in widgets.RatingInput) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.EditRatingItem(w, itemID, in)
	})
}

func (c *Controller) DeleteRatingItem(id, itemID string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeleteRatingItem(w, itemID)
	})
}

// PickRatingItem draws a random item from the category filter.
func (c *Controller) PickRatingItem(id, category string) (models.RatingItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, err := widgets.Find(c.state.Snapshot.Widgets, id)
	if err != nil {
		return models.RatingItem{}, err
	}
	d, ok := w.Data.(models.RatingData)
	if !ok {
		return models.RatingItem{}, widgets.ErrWrongType
	}
	return widgets.RandomRatingItem(d, category, c.rng)
}

// COUNTDOWN

// EditCountdown updates the countdown in memory at once and saves it after
// typing pauses for the debounce delay.
func (c *Controller) EditCountdown(id, eventName, targetDate string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, err := widgets.Find(c.state.Snapshot.Widgets, id)
	if err != nil {
		return err
	}
	if w, err = widgets.SetCountdown(w, eventName, targetDate); err != nil {
		return err
	}
	list, err := widgets.Replace(c.state.Snapshot.Widgets, w)
	if err != nil {
		return err
	}
	c.state.Snapshot.Widgets = list
	c.countdown.Trigger(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.persistLocked(models.SlotWidgets)
	})
	return nil
}

// FlushPending writes a debounced edit now.
func (c *Controller) FlushPending() {
	c.countdown.Flush()
}

// LAST_DONE

func (c *Controller) MarkDone(id string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.MarkDone(w, c.now())
	})
}

func (c *Controller) SetFrequency(id, raw string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.SetFrequency(w, raw)
	})
}

// PLAN

func (c *Controller) AnswerPlan(id, date, questionID, answer string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.SetAnswer(w, date, questionID, answer)
	})
}

func (c *Controller) AddPlanQuestion(id, text string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddQuestion(w, c.newID(), text)
	})
}

func (c *Controller) DeletePlanQuestion(id, questionID string) error {
	if err := c.confirmed("Delete this question? Past answers are kept."); err != nil {
		return err
	}
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeleteQuestion(w, questionID)
	})
}

// DATA

func (c *Controller) AddDataPoint(id, date, raw string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddPoint(w, date, raw)
	})
}

func (c *Controller) DeleteDataPoint(id, date string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeletePoint(w, date)
	})
}

func (c *Controller) SetSeriesMeta(id, label, unit string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.SetSeriesMeta(w, label, unit)
	})
}

// NOTE

func (c *Controller) AddNotebookItem(id string, content richtext.Document) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.AddNotebookItem(w, c.newID(), content, c.now())
	})
}

func (c *Controller) EditNotebookItem(id, itemID string, content richtext.Document) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.EditNotebookItem(w, itemID, content)
	})
}

func (c *Controller) DeleteNotebookItem(id, itemID string) error {
	return c.editWidget(id, func(w models.Widget) (models.Widget, error) {
		return widgets.DeleteNotebookItem(w, itemID)
	})
}
