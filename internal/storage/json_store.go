package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type jsonFile struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

type JSONStore struct {
	// mu guards store: reads come in from tea.Cmd goroutines while the
	// event loop writes.
	mu    sync.RWMutex
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonFile{
		Version: 1,
		Values:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'widescreen init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Values == nil {
		s.store.Values = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write-then-rename so a crash mid-save cannot truncate the store
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.store == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.store.Values[key]
	return value, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Values[key] = value
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.store.Values, key)
	return s.save()
}

func (s *JSONStore) AllKeys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	keys := make([]string, 0, len(s.store.Values))
	for key := range s.store.Values {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
