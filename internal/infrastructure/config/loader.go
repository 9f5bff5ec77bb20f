package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// GameConfig holds all loaded content
type GameConfig struct {
	Entities *EntitiesConfig
	Levels   *LevelsConfig
}

// Loader loads game content from JSON files using fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new content loader from a filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new content loader from fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.readJSON("entities.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadLevels loads levels.json
func (l *Loader) LoadLevels() (*LevelsConfig, error) {
	var cfg LevelsConfig
	if err := l.readJSON("levels.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAll loads all content (entities, levels)
func (l *Loader) LoadAll() (*GameConfig, error) {
	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	levels, err := l.LoadLevels()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Entities: entities,
		Levels:   levels,
	}, nil
}

func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
