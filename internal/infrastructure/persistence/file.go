package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/younwookim/td/internal/application/save"
)

// FileStore keeps the save slot as an indented JSON document
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location
func (s *FileStore) Path() string {
	return s.path
}

// Save writes r atomically: a temp file in the same directory is renamed over the target
func (s *FileStore) Save(ctx context.Context, r save.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}

// Load reads the save slot; a missing file is save.ErrNoSave
func (s *FileStore) Load(ctx context.Context) (save.Record, error) {
	if err := ctx.Err(); err != nil {
		return save.Record{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return save.Record{}, save.ErrNoSave
		}
		return save.Record{}, fmt.Errorf("failed to read save file: %w", err)
	}

	var r save.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return save.Record{}, fmt.Errorf("failed to parse save file %s: %w", filepath.Base(s.path), err)
	}
	return r, nil
}

// Close is a no-op
func (s *FileStore) Close() error {
	return nil
}
