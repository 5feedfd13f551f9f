package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/keyring"
	"github.com/julianstephens/lifetracks/internal/storage/diskv"
	"github.com/julianstephens/lifetracks/internal/storage/postgres"
	"github.com/julianstephens/lifetracks/internal/storage/sqlite"
)

// Provider is a key-value store of whole documents.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents. Get reports ok=false for a key that was never written.
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

const diskvPrefix = "diskv:"

// Open picks a backend from a locator:
//
//	postgres://... or postgresql://...  PostgreSQL (no embedded password)
//	postgres                            PostgreSQL, connection from env or keyring
//	diskv:<dir>                         one file per document
//	<path>.json                         single JSON file
//	<path>                              SQLite (default)
func Open(locator string) (Provider, error) {
	locator = strings.TrimSpace(locator)
	switch {
	case locator == "":
		return nil, fmt.Errorf("empty store locator")
	case locator == "postgres" || locator == "postgresql":
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, err
		}
		return openPostgres(connStr)
	case strings.HasPrefix(locator, "postgres://") || strings.HasPrefix(locator, "postgresql://"):
		return openPostgres(locator)
	case strings.HasPrefix(locator, diskvPrefix):
		return diskv.NewStore(ExpandHome(strings.TrimPrefix(locator, diskvPrefix))), nil
	case strings.EqualFold(filepath.Ext(locator), ".json"):
		return NewJSONStore(ExpandHome(locator)), nil
	default:
		return sqlite.NewStore(ExpandHome(locator)), nil
	}
}

func openPostgres(connStr string) (Provider, error) {
	if ok, err := postgres.ValidateConnString(connStr); !ok {
		return nil, err
	}
	return postgres.New(connStr), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigDir returns the directory that holds logs and backups for a store.
// Non-file stores fall back to ~/.config/lifetracks.
func ConfigDir(p Provider) string {
	path := p.GetConfigPath()
	if _, remote := p.(*postgres.Store); remote || path == "" {
		return ExpandHome(filepath.Join("~/.config", constants.AppName))
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Dir(filepath.Clean(path))
	}
	return filepath.Dir(path)
}

// Versioned is implemented by stores with a migrated schema.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}
