package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/index"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store/file"
)

const (
	// DefaultOrphanTTL is the age after which an unreferenced upload is deleted
	DefaultOrphanTTL = 30 * 24 * time.Hour // 30 days
)

// OrphanCollector deletes uploaded files no clipping points to. Uploads
// younger than the ttl are kept: the client uploads before it saves the record.
type OrphanCollector struct {
	uploads  *file.Uploads
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewOrphanCollector creates a new orphan collector
func NewOrphanCollector(
	uploads *file.Uploads,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *OrphanCollector {
	if ttl == 0 {
		ttl = DefaultOrphanTTL
	}

	return &OrphanCollector{
		uploads:  uploads,
		index:    idx,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection
func (oc *OrphanCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if _, err := oc.Collect(ctx); err != nil {
		oc.logger.Warn("initial orphan collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(oc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := oc.Collect(ctx); err != nil {
					oc.logger.Error("orphan collection failed",
						logger.Error(err))
				}
			case <-oc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (oc *OrphanCollector) Stop() {
	close(oc.stopCh)
}

// Collect deletes unreferenced uploads older than the ttl and returns how many
func (oc *OrphanCollector) Collect(ctx context.Context) (int, error) {
	oc.logger.Debug("running orphan upload collection")

	files, err := oc.uploads.List()
	if err != nil {
		return 0, err
	}
	refs := oc.index.ReferencedFiles()
	now := oc.now()

	deleted := 0
	for _, f := range files {
		if ctx.Err() != nil {
			return deleted, ctx.Err()
		}
		if _, ok := refs[f.Filename]; ok {
			continue
		}
		age := now.Sub(f.UploadDate)
		if age < oc.ttl {
			continue
		}
		if err := oc.uploads.Delete(f.Filename); err != nil {
			oc.logger.Warn("failed to delete orphan upload",
				logger.String("filename", f.Filename),
				logger.Error(err))
			continue
		}
		oc.logger.Info("garbage collected orphan upload",
			logger.String("filename", f.Filename),
			logger.Int64("size", f.Size),
			logger.String("age", age.String()))
		deleted++
	}

	if deleted > 0 {
		oc.logger.Info("orphan collection completed", logger.Int("deleted", deleted))
	} else {
		oc.logger.Debug("no orphan uploads to collect")
	}
	return deleted, nil
}
