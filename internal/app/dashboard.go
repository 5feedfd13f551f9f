package app

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
)

func (c *Controller) AddDashboardCategory(name string) error {
	return c.update(func(s *models.Snapshot) (models.Slot, error) {
		cats, err := dashboard.AddCategory(s.DashboardCats, name)
		if err != nil {
			return models.SlotNone, err
		}
		s.DashboardCats = cats
		return models.SlotDashboardCats, nil
	})
}

// RenameDashboardCategory renames a category. A blank new name asks to
// delete the category instead.
func (c *Controller) RenameDashboardCategory(oldName, newName string) error {
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		cats, err := dashboard.RenameCategory(s.DashboardCats, oldName, newName)
		if err != nil {
			return models.SlotNone, err
		}
		s.DashboardCats = cats
		return models.SlotDashboardCats, nil
	})
	if errors.Is(err, dashboard.ErrRenameToEmpty) {
		return c.DeleteDashboardCategory(oldName)
	}
	if err == nil {
		c.mu.Lock()
		if c.state.ActiveCategory == oldName {
			c.state.ActiveCategory = newName
		}
		c.mu.Unlock()
	}
	return err
}

// DeleteDashboardCategory removes a category after confirmation. Its widgets
// stay in the widget list.
func (c *Controller) DeleteDashboardCategory(name string) error {
	if err := c.confirmed(fmt.Sprintf("Delete category %q? Its widgets are kept.", name)); err != nil {
		return err
	}
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		cats, err := dashboard.DeleteCategory(s.DashboardCats, name)
		if err != nil {
			return models.SlotNone, err
		}
		s.DashboardCats = cats
		return models.SlotDashboardCats, nil
	})
	if err == nil {
		c.mu.Lock()
		if c.state.ActiveCategory == name {
			c.state.ActiveCategory = ""
		}
		c.mu.Unlock()
	}
	return err
}

// SetActiveCategory picks the single-category dashboard view; "" shows all rows.
func (c *Controller) SetActiveCategory(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveCategory = name
}

// AddWidget appends a new widget and opens it.
func (c *Controller) AddWidget(t models.WidgetType, category string) (models.Widget, error) {
	var created models.Widget
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, w, err := dashboard.AddWidget(s.Widgets, s.DashboardCats, c.newID(), t, category, c.now())
		if err != nil {
			return models.SlotNone, err
		}
		s.Widgets, created = list, w
		return models.SlotWidgets, nil
	})
	if err == nil {
		c.OpenWidget(created.ID)
	}
	return created, err
}

// DeleteWidgets removes the selected widgets after confirmation.
func (c *Controller) DeleteWidgets(sel models.Selection) error {
	if sel.IsEmpty() {
		return dashboard.ErrEmptySelection
	}
	if err := c.confirmed(fmt.Sprintf("Delete %d selected widgets?", sel.Len())); err != nil {
		return err
	}
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, err := dashboard.DeleteWidgets(s.Widgets, sel)
		if err != nil {
			return models.SlotNone, err
		}
		s.Widgets = list
		return models.SlotWidgets, nil
	})
	if err == nil {
		c.mu.Lock()
		if sel.Has(c.state.ActiveWidget) {
			c.state.ActiveWidget = ""
		}
		c.mu.Unlock()
		c.EndSelection()
	}
	return err
}

func (c *Controller) MoveWidgets(sel models.Selection, category string) error {
	err := c.update(func(s *models.Snapshot) (models.Slot, error) {
		list, err := dashboard.MoveWidgets(s.Widgets, s.DashboardCats, sel, category)
		if err != nil {
			return models.SlotNone, err
		}
		s.Widgets = list
		return models.SlotWidgets, nil
	})
	if err == nil {
		c.EndSelection()
	}
	return err
}

// OpenWidget makes id the widget shown in detail.
func (c *Controller) OpenWidget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveWidget = id
	c.state.Selecting = false
	c.state.Selection = emptySelection
}

// CloseWidget returns to the dashboard, writing any pending countdown edit.
func (c *Controller) CloseWidget() {
	c.countdown.Flush()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveWidget = ""
	c.state.Selecting = false
	c.state.Selection = emptySelection
}

// Rows returns the all-categories dashboard view.
func (c *Controller) Rows() []dashboard.Row {
	s := c.Snapshot()
	return dashboard.Rows(s.DashboardCats, s.Widgets)
}
