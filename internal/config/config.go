// Package config loads settings from config.yaml and LIFETRACKS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/lifetracks/internal/constants"
)

// ConfigDirEnv overrides the directory holding config.yaml
const ConfigDirEnv = "LIFETRACKS_CONFIG_DIR"

type Config struct {
	// Store is the storage locator, see storage.Open
	Store string
	Debug bool

	AIProject string
	AIRegion  string
	AIModel   string

	BackupMax int

	// File is the config file that was read, empty when none was found
	File string
}

// DefaultDir returns $LIFETRACKS_CONFIG_DIR or ~/.config/lifetracks.
func DefaultDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", constants.AppName)
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// Load reads configuration. An explicit file must exist; otherwise
// config.yaml is looked up in dir and a missing file is fine.
func Load(file, dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("ai.project", "")
	v.SetDefault("ai.region", "us-central1")
	v.SetDefault("ai.model", "")
	v.SetDefault("backup.max", constants.MaxBackups)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config") // .yaml is implicit
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Store:     v.GetString("store"),
		Debug:     v.GetBool("debug"),
		AIProject: v.GetString("ai.project"),
		AIRegion:  v.GetString("ai.region"),
		AIModel:   v.GetString("ai.model"),
		BackupMax: v.GetInt("backup.max"),
		File:      v.ConfigFileUsed(),
	}
	if cfg.BackupMax <= 0 {
		cfg.BackupMax = constants.MaxBackups
	}
	return cfg, nil
}
