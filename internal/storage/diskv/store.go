package diskv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/lifetracks/internal/constants"
)

const tempDirName = ".tmp"

// Store keeps each document as one file under a base directory.
type Store struct {
	basePath string
	d        *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    func(string) []string { return []string{} },
		TempDir:      filepath.Join(s.basePath, tempDirName),
		CacheSizeMax: 1024 * 1024, // 1MB
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.basePath, tempDirName), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.basePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if err != nil {
		return fmt.Errorf("failed to access store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.basePath)
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, tempDirName), 0700); err != nil {
		return fmt.Errorf("failed to prepare store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if s.d == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}
	if !s.d.Has(key) {
		return nil, false, nil
	}
	value, err := s.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	if s.d == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.d == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.d == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, ".") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}
