package widgets

import (
	"github.com/julianstephens/lifetracks/internal/models"
)

// clearer empties a payload down to its configuration. Category tabs,
// questions, labels, the countdown and the last done date survive.
type clearer struct{}

func (clearer) List(d models.ListData) models.WidgetData {
	d.Items = []models.PlaylistItem{}
	return d
}

func (clearer) Rating(d models.RatingData) models.WidgetData {
	d.Items = []models.RatingItem{}
	return d
}

func (clearer) Countdown(d models.CountdownData) models.WidgetData {
	return d
}

func (clearer) LastDone(d models.LastDoneData) models.WidgetData {
	d.History = nil
	return d
}

func (clearer) Plan(d models.PlanData) models.WidgetData {
	d.Records = models.PlanRecords{}
	return d
}

func (clearer) Series(d models.SeriesData) models.WidgetData {
	d.Points = []models.DataPoint{}
	return d
}

func (clearer) Notebook(d models.NotebookData) models.WidgetData {
	d.Items = []models.NotebookItem{}
	return d
}

// ClearContent drops the user-entered records of a widget and keeps its
// structure.
func ClearContent(w models.Widget) models.Widget {
	w.Data = models.Visit[models.WidgetData](w.Data, clearer{})
	return w
}
