// Package store keeps the JSON file, the in-memory index and the optional
// Redis mirror consistent. The file is the source of truth.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/index"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
)

// Index sources.
const (
	SourceFile  = "file"
	SourceAPI   = "api"
	SourceRedis = "redis"
)

// Mirror is the secondary copy of the collection plus the query cache.
type Mirror interface {
	SaveCollection(ctx context.Context, c domain.Collection) error
	LoadCollection(ctx context.Context) (domain.Collection, bool, error)
	FlushCache(ctx context.Context) error
}

// Service serializes every write to the collection.
type Service struct {
	records *file.Records
	index   *index.MemoryIndex
	mirror  Mirror // nil when redis is disabled
	logger  logger.Logger

	mu      sync.Mutex
	modTime time.Time // mtime of the file the index was built from
}

// NewService wires the store. mirror may be nil.
func NewService(records *file.Records, idx *index.MemoryIndex, mirror Mirror, log logger.Logger) *Service {
	return &Service{
		records: records,
		index:   idx,
		mirror:  mirror,
		logger:  log,
	}
}

// All returns the current collection.
func (s *Service) All() domain.Collection {
	return s.index.All()
}

// Index exposes the read model.
func (s *Service) Index() *index.MemoryIndex { return s.index }

// MirrorEnabled reports whether a redis mirror is wired.
func (s *Service) MirrorEnabled() bool { return s.mirror != nil }

// Replace persists c as the whole collection. The file write must succeed;
// the mirror is updated best effort.
func (s *Service) Replace(ctx context.Context, c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.records.Save(c); err != nil {
		return err
	}
	if mt, err := s.records.ModTime(); err == nil {
		s.modTime = mt
	}
	s.index.Replace(c, SourceAPI)
	s.syncMirror(ctx, c)
	return nil
}

// Reload re-reads the file into the index when its mtime changed, or
// unconditionally when force is set. It reports whether the index changed.
func (s *Service) Reload(ctx context.Context, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mt, err := s.records.ModTime()
	if err != nil {
		return false, err
	}
	if !force && mt.Equal(s.modTime) {
		s.logger.Debug("clippings file unchanged, skipping reload")
		return false, nil
	}

	c, err := s.records.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load clippings: %w", err)
	}
	s.modTime = mt
	s.index.Replace(c, SourceFile)
	s.logger.Info("clippings loaded from file",
		logger.String("path", s.records.Path()),
		logger.Int("count", len(c)))
	s.syncMirror(ctx, c)
	return true, nil
}

// Restore rebuilds the file and the index from the mirror when the file is
// missing. It reports whether anything was restored.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	if s.mirror == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records.Exists() {
		return false, nil
	}

	c, found, err := s.mirror.LoadCollection(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load collection from redis: %w", err)
	}
	if !found || len(c) == 0 {
		s.logger.Info("no collection snapshot found in redis")
		return false, nil
	}

	if err := s.records.Save(c); err != nil {
		return false, err
	}
	if mt, err := s.records.ModTime(); err == nil {
		s.modTime = mt
	}
	s.index.Replace(c, SourceRedis)
	s.logger.Warn("clippings file missing, restored from redis snapshot",
		logger.Int("count", len(c)))
	return true, nil
}

func (s *Service) syncMirror(ctx context.Context, c domain.Collection) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.SaveCollection(ctx, c); err != nil {
		s.logger.Warn("failed to mirror collection to redis", logger.Error(err))
		// Don't fail - the file is the source of truth
	}
	if err := s.mirror.FlushCache(ctx); err != nil {
		s.logger.Warn("failed to flush query cache", logger.Error(err))
	}
}
