package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "mortgage:simulation:"
	redisIndexKey  = "mortgage:simulations"
)

// RedisStore keeps each record as a JSON string with a sorted-set index
// scored by creation time.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(ctx context.Context, addr string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: rdb}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Save stores record, replacing any record with the same ID.
func (r *RedisStore) Save(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", record.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisKey(record.ID), payload, 0)
	pipe.ZAdd(ctx, redisIndexKey, redis.Z{
		Score:  float64(record.CreatedAt.UnixNano()),
		Member: record.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return nil
}

// Get returns the record with the given ID.
func (r *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	payload, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return record, nil
}

// List returns all records ordered by creation time.
func (r *RedisStore) List(ctx context.Context) ([]Record, error) {
	ids, err := r.client.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		record, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry outlived its record
			r.client.ZRem(ctx, redisIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes the record with the given ID.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if err := r.client.ZRem(ctx, redisIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex record %s: %w", id, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
