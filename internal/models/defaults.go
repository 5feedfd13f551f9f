package models

import (
	"time"

	"github.com/julianstephens/lifetracks/internal/constants"
)

const day = 24 * time.Hour

// DefaultData returns the payload a freshly added widget of type t starts with.
func DefaultData(t WidgetType, now time.Time) WidgetData {
	switch t {
	case WidgetList:
		return ListData{Items: []PlaylistItem{}, Categories: []string{constants.DefaultListCategory}}
	case WidgetRating:
		return RatingData{Items: []RatingItem{}, Categories: append([]string(nil), constants.DefaultRatingCategories...)}
	case WidgetCountdown:
		return CountdownData{TargetDate: now.Format(constants.DateFormat), EventName: constants.DefaultEventName}
	case WidgetLastDone:
		return LastDoneData{LastDate: NewTimestamp(now), FrequencyDays: 1}
	case WidgetPlan:
		return PlanData{
			Questions: []PlanQuestion{{ID: "q1", Text: constants.DefaultPlanQuestion}},
			Records:   PlanRecords{},
		}
	case WidgetSeries:
		return SeriesData{Label: constants.DefaultSeriesLabel, Unit: "", Points: []DataPoint{}}
	case WidgetNote:
		return NotebookData{Items: []NotebookItem{}}
	}
	return nil
}

// NewWidget builds a widget of type t with default title, color and data.
func NewWidget(id string, t WidgetType, category string, now time.Time) Widget {
	w := Widget{
		ID:                id,
		Type:              t,
		Title:             constants.DefaultWidgetTitle,
		Data:              DefaultData(t, now),
		DashboardCategory: category,
	}
	switch t {
	case WidgetNote:
		w.Title = constants.DefaultNotebookTitle
	case WidgetCountdown:
		w.Color = constants.DefaultCountdownColor
	case WidgetLastDone:
		w.Color = constants.DefaultLastDoneColor
	}
	return w
}

// DefaultWidgets is the starter dashboard shown before anything is saved.
func DefaultWidgets(now time.Time) []Widget {
	return []Widget{
		{
			ID: "w1", Type: WidgetList, Title: "阅读清单", DashboardCategory: "清单",
			Data: ListData{
				Items: []PlaylistItem{
					{ID: "1", Title: "了不起的盖茨比", Completed: false, Category: "小说"},
					{ID: "2", Title: "原子习惯", Completed: true, Category: "成长"},
				},
				Categories: []string{"小说", "成长"},
			},
		},
		{
			ID: "w2", Type: WidgetRating, Title: "书影音", DashboardCategory: "记录",
			Data: RatingData{
				Items: []RatingItem{
					{
						ID:       "1",
						Title:    "沙丘2",
						Rating:   4.5,
						Category: "电影",
						Cover:    "https://m.media-amazon.com/images/M/MV5BN2QyZGU4ZDctOWMzMy00NTc5LThlOGQtODhmNDI1NmY5YzAwXkEyXkFqcGdeQXVyMDM2NDM2MQ@@._V1_.jpg",
					},
				},
				Categories: []string{"电影", "书籍", "美食"},
			},
		},
		{
			ID: "w3", Type: WidgetCountdown, Title: "倒数日", DashboardCategory: "时间",
			Data:  CountdownData{TargetDate: "2024-12-25", EventName: "日本旅行"},
			Color: constants.DefaultCountdownColor,
		},
		{
			ID: "w4", Type: WidgetLastDone, Title: "浇花", DashboardCategory: "时间",
			Data:  LastDoneData{LastDate: NewTimestamp(now.Add(-3 * day)), FrequencyDays: 7},
			Color: constants.DefaultLastDoneColor,
		},
		{
			ID: "w5", Type: WidgetPlan, Title: "每日复盘", DashboardCategory: "计划",
			Data: PlanData{
				Questions: []PlanQuestion{
					{ID: "q1", Text: "今天最值得开心的一件事？"},
					{ID: "q2", Text: "明日重要待办"},
				},
				Records: PlanRecords{},
			},
		},
		{
			ID: "w6", Type: WidgetSeries, Title: "体重记录", DashboardCategory: "记录",
			Data: SeriesData{
				Label: "体重",
				Unit:  "kg",
				Points: []DataPoint{
					{Date: "2023-01-01", Value: 75},
					{Date: "2023-01-08", Value: 74.5},
					{Date: "2023-01-15", Value: 74.2},
					{Date: "2023-01-22", Value: 73.8},
					{Date: "2023-01-29", Value: 73.5},
				},
			},
		},
	}
}

// DefaultDashboardCategories returns a fresh copy of the seeded category list.
func DefaultDashboardCategories() []string {
	return append([]string(nil), constants.DefaultDashboardCategories...)
}

// DefaultSnapshot is the whole state tree of a first run.
func DefaultSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Notes:         []Note{},
		Widgets:       DefaultWidgets(now),
		DashboardCats: DefaultDashboardCategories(),
		ThemeColor:    constants.DefaultThemeColor,
	}
}
