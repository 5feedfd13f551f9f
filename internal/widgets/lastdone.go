package widgets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

// MarkDone sets the last date to now and prepends it to the capped history.
func MarkDone(w models.Widget, now time.Time) (models.Widget, error) {
	d, ok := w.Data.(models.LastDoneData)
	if !ok {
		return w, wrongType(w, "mark done")
	}
	ts := models.NewTimestamp(now)
	history := append([]models.Timestamp{ts}, d.History...)
	if len(history) > constants.LastDoneHistoryCap {
		history = history[:constants.LastDoneHistoryCap]
	}
	d.LastDate = ts
	d.History = history
	w.Data = d
	return w, nil
}

// SetFrequency parses raw as a positive whole number of days.
func SetFrequency(w models.Widget, raw string) (models.Widget, error) {
	d, ok := w.Data.(models.LastDoneData)
	if !ok {
		return w, wrongType(w, "set frequency")
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return w, fmt.Errorf("%w: %q", ErrInvalidFrequency, raw)
	}
	d.FrequencyDays = n
	w.Data = d
	return w, nil
}

// DaysSince counts whole 24h periods between the last date and now.
func DaysSince(d models.LastDoneData, now time.Time) int {
	elapsed := now.Sub(d.LastDate.Time)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// IsOverdue reports whether the cadence has lapsed. It only affects display.
func IsOverdue(d models.LastDoneData, now time.Time) bool {
	return d.FrequencyDays > 0 && DaysSince(d, now) >= d.FrequencyDays
}
