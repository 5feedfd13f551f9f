package constants

// DefaultThemeColor is used until the user picks one from ThemePalette
const DefaultThemeColor = "#ef4444"

const (
	DefaultCountdownColor = "#34d399"
	DefaultLastDoneColor  = "#fcd34d"

	DefaultWidgetTitle   = "新模块"
	DefaultNotebookTitle = "新笔记"
	DefaultEventName     = "新事件"
	DefaultSeriesLabel   = "数据"
	DefaultPlanQuestion  = "今日任务"
	DefaultListCategory  = "默认"

	// FallbackDashboardCategory is assigned to new widgets when no category exists at all
	FallbackDashboardCategory = "Default"
)

// DefaultDashboardCategories seeds the global category list on first run.
var DefaultDashboardCategories = []string{"时间", "清单", "记录", "计划"}

// DefaultRatingCategories seeds a fresh RATING widget.
var DefaultRatingCategories = []string{"Book", "Movie", "Food"}

// ThemePalette lists the selectable application theme colors.
var ThemePalette = []string{
	"#0f172a", "#ea580c", "#4f46e5", "#059669",
	"#db2777", "#7c3aed", "#0891b2", "#b91c1c",
}

// AccentPalette lists the accent colors a COUNTDOWN or LAST_DONE card may use.
var AccentPalette = []string{
	"#000000", "#ffffff", "#bbf7d0", "#34d399",
	"#fcd34d", "#f87171", "#60a5fa", "#bfdbfe",
}

var lightAccents = map[string]bool{
	"#ffffff": true,
	"#bbf7d0": true,
	"#fcd34d": true,
	"#bfdbfe": true,
}

// IsLightAccent reports whether dark text should be drawn on the accent.
func IsLightAccent(color string) bool {
	return lightAccents[color]
}

// InPalette reports whether color is one of palette's entries.
func InPalette(palette []string, color string) bool {
	for _, c := range palette {
		if c == color {
			return true
		}
	}
	return false
}
