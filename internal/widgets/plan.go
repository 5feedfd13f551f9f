package widgets

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
)

func planData(w models.Widget, op string) (models.PlanData, error) {
	d, ok := w.Data.(models.PlanData)
	if !ok {
		return d, wrongType(w, op)
	}
	return d, nil
}

// DateStrip returns today and the six preceding days, oldest first.
func DateStrip(now time.Time) []string {
	out := make([]string, constants.PlanStripDays)
	for i := range out {
		out[i] = now.AddDate(0, 0, i-(constants.PlanStripDays-1)).Format(constants.DateFormat)
	}
	return out
}

// SetAnswer records an answer for one question on one date. A blank answer
// clears the entry.
func SetAnswer(w models.Widget, date, questionID, answer string) (models.Widget, error) {
	d, err := planData(w, "answer")
	if err != nil {
		return w, err
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return w, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if !slices.ContainsFunc(d.Questions, func(q models.PlanQuestion) bool { return q.ID == questionID }) {
		return w, itemNotFound(questionID)
	}

	records := make(models.PlanRecords, len(d.Records)+1)
	for k, v := range d.Records {
		records[k] = v
	}
	day := maps.Clone(records[date])
	if day == nil {
		day = map[string]string{}
	}
	if strings.TrimSpace(answer) == "" {
		delete(day, questionID)
	} else {
		day[questionID] = answer
	}
	if len(day) == 0 {
		delete(records, date)
	} else {
		records[date] = day
	}
	d.Records = records
	w.Data = d
	return w, nil
}

// Answers returns the answers recorded on date. Missing dates yield an empty map.
func Answers(d models.PlanData, date string) map[string]string {
	if day, ok := d.Records[date]; ok {
		return day
	}
	return map[string]string{}
}

// AddQuestion appends a prompt.
func AddQuestion(w models.Widget, id, text string) (models.Widget, error) {
	d, err := planData(w, "add question")
	if err != nil {
		return w, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return w, ErrEmptyTitle
	}
	d.Questions = append(slices.Clone(d.Questions), models.PlanQuestion{ID: id, Text: text})
	w.Data = d
	return w, nil
}

// DeleteQuestion removes a prompt. Answers already recorded against it stay in
// the records.
func DeleteQuestion(w models.Widget, id string) (models.Widget, error) {
	d, err := planData(w, "delete question")
	if err != nil {
		return w, err
	}
	if !slices.ContainsFunc(d.Questions, func(q models.PlanQuestion) bool { return q.ID == id }) {
		return w, itemNotFound(id)
	}
	d.Questions = slices.DeleteFunc(slices.Clone(d.Questions), func(q models.PlanQuestion) bool { return q.ID == id })
	w.Data = d
	return w, nil
}

// Progress returns how many current questions have a non-blank answer on date
// and how many questions there are.
func Progress(d models.PlanData, date string) (answered, total int) {
	day := d.Records[date]
	for _, q := range d.Questions {
		if strings.TrimSpace(day[q.ID]) != "" {
			answered++
		}
	}
	return answered, len(d.Questions)
}
