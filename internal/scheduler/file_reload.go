package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store"
)

// FileReloader periodically re-reads clippings.json so out-of-band edits
// reach the index
type FileReloader struct {
	store         *store.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewFileReloader creates a new file reloader
func NewFileReloader(
	svc *store.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *FileReloader {
	return &FileReloader{
		store:         svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the file once, then keeps reloading in the background
func (fr *FileReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if _, err := fr.store.Reload(ctx, true); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(fr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fr.reload(ctx, false)
			case <-fr.manualTrigger:
				fr.logger.Info("manual reload triggered")
				fr.reload(ctx, true)
			case <-fr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (fr *FileReloader) Stop() {
	close(fr.stopCh)
}

func (fr *FileReloader) reload(ctx context.Context, force bool) {
	changed, err := fr.store.Reload(ctx, force)
	if err != nil {
		// Keep serving the previous index
		fr.logger.Error("failed to reload clippings", logger.Error(err))
		return
	}
	if changed {
		fr.logger.Info("clippings reloaded", logger.Int("count", fr.store.Index().Count()))
	}
}
