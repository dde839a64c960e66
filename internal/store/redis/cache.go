package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

// flushBatch is the number of cache keys deleted per round trip.
const flushBatch = 100

// CacheQuery stores a rendered query result under the query key.
func (s *Store) CacheQuery(ctx context.Context, query string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := s.client.Set(ctx, CacheKey(query), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache query: %w", err)
	}
	return nil
}

// GetCachedQuery returns the cached payload of query; ok is false on a miss.
func (s *Store) GetCachedQuery(ctx context.Context, query string) ([]byte, bool, error) {
	payload, err := s.client.Get(ctx, CacheKey(query)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to get cached query: %w", err)
	}
	return payload, true, nil
}

// FlushCache drops every cached query. It runs after each write so readers
// never see results computed from an older collection.
// Keys are collected before any delete: deleting while SCAN walks the
// keyspace can make the cursor skip entries.
func (s *Store) FlushCache(ctx context.Context) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", flushBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}

	for chunk := range slices.Chunk(keys, flushBatch) {
		if err := s.client.Del(ctx, chunk...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}
	return nil
}
