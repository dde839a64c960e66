package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// DefaultCacheTTL is the default TTL for cached query results
const DefaultCacheTTL = 5 * time.Minute

// Store mirrors the collection into Redis and caches query results.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SnapshotMeta describes the stored snapshot.
type SnapshotMeta struct {
	Count   int
	SavedAt time.Time
}

// SaveCollection replaces the snapshot in a single pipeline.
func (s *Store) SaveCollection(ctx context.Context, c domain.Collection) error {
	data, err := json.Marshal(c.Clone())
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyCollection, data, 0)
	pipe.HSet(ctx, KeyCollectionMeta,
		"count", len(c),
		"saved_at", time.Now().UTC().Format(time.RFC3339Nano),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// LoadCollection returns the snapshot. found is false when Redis holds none.
func (s *Store) LoadCollection(ctx context.Context) (c domain.Collection, found bool, err error) {
	data, err := s.client.Get(ctx, KeyCollection).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Collection{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to get collection: %w", err)
	}

	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return c.Clone(), true, nil
}

// Meta reads the snapshot description.
func (s *Store) Meta(ctx context.Context) (SnapshotMeta, error) {
	vals, err := s.client.HGetAll(ctx, KeyCollectionMeta).Result()
	if err != nil {
		return SnapshotMeta{}, fmt.Errorf("failed to get snapshot meta: %w", err)
	}

	var meta SnapshotMeta
	if v, ok := vals["count"]; ok {
		meta.Count, _ = strconv.Atoi(v)
	}
	if v, ok := vals["saved_at"]; ok {
		meta.SavedAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	return meta, nil
}
