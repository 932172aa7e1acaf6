// Package storage keeps a single user's cycle state in a local JSON file.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/terraincognita07/periodtracker/internal/models"
)

var ErrCorruptStateFile = errors.New("corrupt state file")

// FileStore implements services.StateStore over one JSON document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load treats a missing or blank file as no history.
func (s *FileStore) Load() (models.CycleState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.CycleState{}, false, nil
	}
	if err != nil {
		return models.CycleState{}, false, fmt.Errorf("read state file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.CycleState{}, false, nil
	}

	state := models.NewCycleState()
	if err := json.Unmarshal(data, &state); err != nil {
		return models.CycleState{}, false, fmt.Errorf("%w: %s: %v", ErrCorruptStateFile, s.path, err)
	}
	if state.Periods == nil {
		state.Periods = []models.PeriodEntry{}
	}
	if state.Symptoms == nil {
		state.Symptoms = []models.SymptomEntry{}
	}
	return state, true, nil
}

func (s *FileStore) Save(state models.CycleState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	return atomicWriteFileJSON(s.path, state)
}

func atomicWriteFileJSON(filePath string, data any) error {
	tempFile := filePath + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, filePath)
}
