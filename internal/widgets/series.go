package widgets

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

func seriesData(w models.Widget, op string) (models.SeriesData, error) {
	d, ok := w.Data.(models.SeriesData)
	if !ok {
		return d, wrongType(w, op)
	}
	return d, nil
}

// AddPoint stores raw as the value for date, replacing any point already on
// that date. Points stay sorted ascending by date. An unparseable value leaves
// the widget unchanged.
func AddPoint(w models.Widget, date, raw string) (models.Widget, error) {
	d, err := seriesData(w, "add point")
	if err != nil {
		return w, err
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return w, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return w, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	points := slices.DeleteFunc(slices.Clone(d.Points), func(p models.DataPoint) bool { return p.Date == date })
	points = append(points, models.DataPoint{Date: date, Value: v})
	// YYYY-MM-DD sorts lexically
	slices.SortStableFunc(points, func(a, b models.DataPoint) int { return strings.Compare(a.Date, b.Date) })
	d.Points = points
	w.Data = d
	return w, nil
}

func DeletePoint(w models.Widget, date string) (models.Widget, error) {
	d, err := seriesData(w, "delete point")
	if err != nil {
		return w, err
	}
	if !slices.ContainsFunc(d.Points, func(p models.DataPoint) bool { return p.Date == date }) {
		return w, itemNotFound(date)
	}
	d.Points = slices.DeleteFunc(slices.Clone(d.Points), func(p models.DataPoint) bool { return p.Date == date })
	w.Data = d
	return w, nil
}

// SetSeriesMeta sets the label and unit shown next to values.
func SetSeriesMeta(w models.Widget, label, unit string) (models.Widget, error) {
	d, err := seriesData(w, "set label")
	if err != nil {
		return w, err
	}
	d.Label = strings.TrimSpace(label)
	d.Unit = strings.TrimSpace(unit)
	w.Data = d
	return w, nil
}

// Latest returns the most recent point.
func Latest(d models.SeriesData) (models.DataPoint, bool) {
	if len(d.Points) == 0 {
		return models.DataPoint{}, false
	}
	return d.Points[len(d.Points)-1], true
}

// Trend returns the values of the last n points, oldest first.
func Trend(d models.SeriesData, n int) []float64 {
	pts := d.Points
	if n >= 0 && len(pts) > n {
		pts = pts[len(pts)-n:]
	}
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value
	}
	return out
}
