package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "lifetracks"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lifetracks/lifetracks.db"
	Version            = "v0.1.0"

	// EnvPrefix is the prefix viper uses for environment overrides (LIFETRACKS_STORE, ...)
	EnvPrefix = "LIFETRACKS"
	// DBConnectionEnv holds a postgres connection string so it never has to live in a flag
	DBConnectionEnv = "LIFETRACKS_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lifetracks-"
	BackupFileSuffix = ".json"
	BackupTimeFormat = "20060102-150405"
)

// Persistent storage keys. Each holds one self-contained document.
const (
	KeyNotes         = "notes"
	KeyWidgets       = "widgets"
	KeyDashboardCats = "dashboardCats"
	KeyTheme         = "appTheme"
)

const (
	// LastDoneHistoryCap bounds LAST_DONE history, newest first
	LastDoneHistoryCap = 20
	// PlanStripDays is today plus the six preceding days
	PlanStripDays = 7
	// RecentTagLimit is how many unique tags the composer offers as shortcuts
	RecentTagLimit = 8
	// CountdownDebounce is the pause in typing before a countdown edit is committed
	CountdownDebounce = 500 * time.Millisecond
	// TrendPreviewPoints is the number of points drawn in a DATA preview sparkline
	TrendPreviewPoints = 7
	// AnalyzePoints is the window of recent DATA points sent for trend analysis
	AnalyzePoints = 10
	// MaxSuggestedTags caps AI tag suggestions
	MaxSuggestedTags = 3
	// MaxRating is the top of the RATING scale
	MaxRating = 5.0
)

const (
	SessionNotes SessionState = iota
	SessionDashboard
)
