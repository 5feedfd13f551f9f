package app

import (
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

var emptySelection = models.NewSelection()

// SetView switches between the notes and dashboard projections. Selection
// mode does not survive a view change.
func (c *Controller) SetView(v constants.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.View != v {
		c.state.Selecting = false
		c.state.Selection = emptySelection
	}
	c.state.View = v
}

// StartSelection enters selection mode with nothing selected.
func (c *Controller) StartSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selecting = true
	c.state.Selection = emptySelection
}

// EndSelection leaves selection mode and drops the selection.
func (c *Controller) EndSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selecting = false
	c.state.Selection = emptySelection
}

// ToggleSelected flips id in the selection, entering selection mode if needed.
func (c *Controller) ToggleSelected(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selecting = true
	c.state.Selection = c.state.Selection.Toggle(id)
}
