// Package persistence implements the save.Store backends.
package persistence

import (
	"fmt"
	"io"

	"github.com/younwookim/td/internal/application/save"
	"github.com/younwookim/td/internal/infrastructure/config"
)

// Backend is a save.Store that holds resources until closed
type Backend interface {
	save.Store
	io.Closer
}

// NewBackend creates a store based on configuration
func NewBackend(cfg config.SaveSettings) (Backend, error) {
	switch cfg.Backend {
	case "", "json":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown save backend: %s", cfg.Backend)
	}
}
