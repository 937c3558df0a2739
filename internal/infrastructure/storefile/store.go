package storefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopmate/backend/internal/domain"
)

// fileFormat is the on-disk layout of the connections file
type fileFormat struct {
	Stores []domain.StoreRecord `json:"stores"`
}

// Store persists store connections in a local JSON file
type Store struct {
	path  string
	mutex sync.Mutex
}

// New creates a connections file store at path
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file location
func (s *Store) Path() string {
	return s.path
}

// Load reads all saved connections. A missing file yields no records.
func (s *Store) Load() ([]domain.StoreRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.StoreRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read connections file: %w", err)
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse connections file: %w", err)
	}
	if file.Stores == nil {
		file.Stores = []domain.StoreRecord{}
	}
	return file.Stores, nil
}

// Save replaces the file contents with records. The write goes through a temp file and rename.
func (s *Store) Save(records []domain.StoreRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if records == nil {
		records = []domain.StoreRecord{}
	}
	data, err := json.MarshalIndent(fileFormat{Stores: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode connections: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create connections directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".connections-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write connections: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace connections file: %w", err)
	}
	return nil
}
