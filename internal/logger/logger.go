// Package logger is the process-wide structured log. Everything goes to a
// rotating file under the config directory; nothing reaches the terminal
// unless debug output is requested.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/lifetracks/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	file *lumberjack.Logger
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps debug lines off stderr. The TUI owns the screen.
	Quiet bool
}

// Path returns the log file used for configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init replaces the global logger. A previous log file is closed first.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	_ = Close()

	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var w io.Writer = file
	if cfg.Debug {
		level = log.DebugLevel
		if !cfg.Quiet {
			w = io.MultiWriter(os.Stderr, file)
		}
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Close flushes and closes the log file. Logging after Close is dropped.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file, Logger = nil, nil
	return err
}

// GetLogger returns the global logger, falling back to a discarding logger
// when Init has not run (tests, library use).
func GetLogger() *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	_ = Close()
	os.Exit(1)
}
