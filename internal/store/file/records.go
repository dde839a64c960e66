// Package file is the file-backed record store: one JSON document holding the
// whole collection, plus a directory of uploaded PDFs.
package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
)

// Records persists the collection as an indented JSON array.
type Records struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

func NewRecords(path string, log logger.Logger) *Records {
	return &Records{path: path, log: log}
}

func (r *Records) Path() string { return r.path }

// Exists reports whether the data file is present.
func (r *Records) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// ModTime returns the data file modification time, zero when missing.
func (r *Records) ModTime() (time.Time, error) {
	st, err := os.Stat(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat clippings file: %w", err)
	}
	return st.ModTime(), nil
}

// Load reads the collection. A missing file is an empty collection.
func (r *Records) Load() (domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read clippings file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Collection{}, nil
	}

	var c domain.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse clippings file: %w", err)
	}
	return c.Clone(), nil
}

// Save replaces the file content through a temp file + rename.
func (r *Records) Save(c domain.Collection) error {
	data, err := json.MarshalIndent(c.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode clippings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".clippings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write clippings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync clippings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace clippings file: %w", err)
	}

	if r.log != nil {
		r.log.Info("clippings saved", logger.String("path", r.path), logger.Int("items", len(c)))
	}
	return nil
}
