package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// Redis persists the guest cart as a JSON value in redis, for frontends
// that keep guest state out of process.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis scopes the storage key by guest id so multiple guests can share
// one redis.
func NewRedis(client *redis.Client, guestID string) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if guestID == "" {
		return nil, fmt.Errorf("guestID is empty")
	}

	return &Redis{
		client: client,
		key:    fmt.Sprintf("%s:%s", StorageKey, guestID),
	}, nil
}

func (r *Redis) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	items, err := decodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("decodeItems: %w", err)
	}
	return items, nil
}

func (r *Redis) Save(ctx context.Context, items []domain.CartItem) error {
	data, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("encodeItems: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
