package models

// WidgetData is the closed set of widget payloads. The unexported method
// keeps other packages from adding members; use Visit to switch over it.
type WidgetData interface {
	Kind() WidgetType
	sealed()
}

type ListData struct {
	Items      []PlaylistItem `json:"items"`
	Categories []string       `json:"categories"`
}

type RatingData struct {
	Items      []RatingItem `json:"items"`
	Categories []string     `json:"categories"`
}

type CountdownData struct {
	TargetDate string `json:"targetDate"` // YYYY-MM-DD format
	EventName  string `json:"eventName"`
}

type LastDoneData struct {
	LastDate      Timestamp   `json:"lastDate"`
	FrequencyDays int         `json:"frequencyDays"`
	History       []Timestamp `json:"history,omitempty"`
}

type PlanData struct {
	Questions []PlanQuestion `json:"questions"`
	Records   PlanRecords    `json:"records"`
}

// SeriesData backs a DATA widget. Points stay sorted by date, one per date.
type SeriesData struct {
	Label  string      `json:"label"`
	Unit   string      `json:"unit"`
	Points []DataPoint `json:"points"`
}

type NotebookData struct {
	Items []NotebookItem `json:"items"`
}

func (ListData) Kind() WidgetType      { return WidgetList }
func (RatingData) Kind() WidgetType    { return WidgetRating }
func (CountdownData) Kind() WidgetType { return WidgetCountdown }
func (LastDoneData) Kind() WidgetType  { return WidgetLastDone }
func (PlanData) Kind() WidgetType      { return WidgetPlan }
func (SeriesData) Kind() WidgetType    { return WidgetSeries }
func (NotebookData) Kind() WidgetType  { return WidgetNote }

func (ListData) sealed()      {}
func (RatingData) sealed()    {}
func (CountdownData) sealed() {}
func (LastDoneData) sealed()  {}
func (PlanData) sealed()      {}
func (SeriesData) sealed()    {}
func (NotebookData) sealed()  {}

// Visitor has one method per widget payload. Adding a widget type adds a
// method here, and every implementation stops compiling until it handles it.
type Visitor[T any] interface {
	List(ListData) T
	Rating(RatingData) T
	Countdown(CountdownData) T
	LastDone(LastDoneData) T
	Plan(PlanData) T
	Series(SeriesData) T
	Notebook(NotebookData) T
}

// Visit dispatches d to the matching Visitor method.
func Visit[T any](d WidgetData, v Visitor[T]) T {
	switch d := d.(type) {
	case ListData:
		return v.List(d)
	case RatingData:
		return v.Rating(d)
	case CountdownData:
		return v.Countdown(d)
	case LastDoneData:
		return v.LastDone(d)
	case PlanData:
		return v.Plan(d)
	case SeriesData:
		return v.Series(d)
	case NotebookData:
		return v.Notebook(d)
	}
	panic("models: unhandled widget data")
}
