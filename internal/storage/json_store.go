package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/lifetracks/internal/constants"
)

type fileDocument struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every document in one JSON file. Each write rewrites the file.
type JSONStore struct {
	path string
	doc  *fileDocument
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &fileDocument{Version: 1, Values: make(map[string]string)}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &fileDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]string)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.doc == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}
	value, ok := s.doc.Values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Values[key] = string(value)
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Values[key]; !ok {
		return nil
	}
	delete(s.doc.Values, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.doc.Values))
	for k := range s.doc.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
