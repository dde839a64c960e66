package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/store"
)

// restoreTimeout bounds the startup restore so a hung redis cannot block boot.
const restoreTimeout = 10 * time.Second

// RedisSyncer brings back clippings.json from the redis snapshot when the
// daemon starts without it.
type RedisSyncer struct {
	store  *store.Service
	logger logger.Logger
}

func NewRedisSyncer(svc *store.Service, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{store: svc, logger: log}
}

// Sync is a no-op without a mirror or when the data file exists.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	if !rs.store.MirrorEnabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, restoreTimeout)
	defer cancel()

	restored, err := rs.store.Restore(ctx)
	if err != nil {
		return err
	}
	if restored {
		rs.logger.Info("clippings restored from redis snapshot",
			logger.Int("count", rs.store.Index().Count()))
	}
	return nil
}
