package widgets

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

// SetCountdown replaces the event name and target date. The date must parse
// as YYYY-MM-DD.
func SetCountdown(w models.Widget, eventName, targetDate string) (models.Widget, error) {
	if _, ok := w.Data.(models.CountdownData); !ok {
		return w, wrongType(w, "set countdown")
	}
	targetDate = strings.TrimSpace(targetDate)
	if _, err := time.Parse(constants.DateFormat, targetDate); err != nil {
		return w, fmt.Errorf("%w: %q", ErrInvalidDate, targetDate)
	}
	w.Data = models.CountdownData{TargetDate: targetDate, EventName: strings.TrimSpace(eventName)}
	return w, nil
}

// DaysUntil is the floor of the whole days between now and midnight UTC of
// the target date. It goes negative during the target day itself, and is
// -1 until a full day has passed.
func DaysUntil(d models.CountdownData, now time.Time) (int, error) {
	target, err := time.Parse(constants.DateFormat, d.TargetDate)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, d.TargetDate)
	}
	return int(math.Floor(target.Sub(now).Hours() / 24)), nil
}

// CountdownPhrase frames a day count as "N days until" or "N days past".
// Zero is still ahead of the target.
func CountdownPhrase(days int) string {
	if days < 0 {
		return fmt.Sprintf("%d %s past", -days, plural(-days, "day"))
	}
	return fmt.Sprintf("%d %s until", days, plural(days, "day"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
