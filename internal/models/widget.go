package models

import (
	"encoding/json"
	"fmt"
)

// WidgetType tags a widget's data payload.
type WidgetType string

const (
	WidgetList      WidgetType = "LIST"
	WidgetRating    WidgetType = "RATING"
	WidgetCountdown WidgetType = "COUNTDOWN"
	WidgetLastDone  WidgetType = "LAST_DONE"
	WidgetPlan      WidgetType = "PLAN"
	WidgetSeries    WidgetType = "DATA"
	WidgetNote      WidgetType = "NOTE"
)

// WidgetTypes lists every widget type in menu order.
var WidgetTypes = []WidgetType{
	WidgetList, WidgetRating, WidgetCountdown, WidgetLastDone, WidgetPlan, WidgetSeries, WidgetNote,
}

// ParseWidgetType accepts a type name case-sensitively.
func ParseWidgetType(s string) (WidgetType, error) {
	for _, t := range WidgetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown widget type %q", s)
}

// Widget is a dashboard card. Data always matches Type.
type Widget struct {
	ID                string
	Type              WidgetType
	Title             string
	Data              WidgetData
	Color             string
	DashboardCategory string
}

type widgetJSON struct {
	ID                string          `json:"id"`
	Type              WidgetType      `json:"type"`
	Title             string          `json:"title"`
	Data              json.RawMessage `json:"data"`
	Color             string          `json:"color,omitempty"`
	DashboardCategory string          `json:"dashboardCategory,omitempty"`
}

func (w Widget) MarshalJSON() ([]byte, error) {
	if w.Data == nil {
		return nil, fmt.Errorf("widget %s has no data", w.ID)
	}
	if w.Data.Kind() != w.Type {
		return nil, fmt.Errorf("widget %s: %s data on a %s widget", w.ID, w.Data.Kind(), w.Type)
	}
	data, err := json.Marshal(w.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(widgetJSON{
		ID:                w.ID,
		Type:              w.Type,
		Title:             w.Title,
		Data:              data,
		Color:             w.Color,
		DashboardCategory: w.DashboardCategory,
	})
}

// UnmarshalJSON decodes data according to type. Unknown types are rejected.
func (w *Widget) UnmarshalJSON(b []byte) error {
	var raw widgetJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("widget is missing an id")
	}
	data, err := decodeData(raw.Type, raw.Data)
	if err != nil {
		return fmt.Errorf("widget %s: %w", raw.ID, err)
	}
	*w = Widget{
		ID:                raw.ID,
		Type:              raw.Type,
		Title:             raw.Title,
		Data:              data,
		Color:             raw.Color,
		DashboardCategory: raw.DashboardCategory,
	}
	return nil
}

func decodeData(t WidgetType, raw json.RawMessage) (WidgetData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%s widget has no data", t)
	}
	var d WidgetData
	switch t {
	case WidgetList:
		d = &ListData{}
	case WidgetRating:
		d = &RatingData{}
	case WidgetCountdown:
		d = &CountdownData{}
	case WidgetLastDone:
		d = &LastDoneData{}
	case WidgetPlan:
		d = &PlanData{}
	case WidgetSeries:
		d = &SeriesData{}
	case WidgetNote:
		d = &NotebookData{}
	default:
		return nil, fmt.Errorf("unknown widget type %q", t)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", t, err)
	}
	return deref(d), nil
}

func deref(d WidgetData) WidgetData {
	switch v := d.(type) {
	case *ListData:
		return *v
	case *RatingData:
		return *v
	case *CountdownData:
		return *v
	case *LastDoneData:
		return *v
	case *PlanData:
		return *v
	case *SeriesData:
		return *v
	case *NotebookData:
		return *v
	}
	return d
}
