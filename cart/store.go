package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"souq/rdx"

	"github.com/redis/go-redis/v9"
)

// Storage is the durable key-value contract the cart persists through.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const cartTTL = 30 * 24 * time.Hour

// RedisStorage keeps carts in Redis, one JSON blob per session.
type RedisStorage struct{}

func (RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := rdx.Conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (RedisStorage) Set(ctx context.Context, key, value string) error {
	return rdx.Conn.Set(ctx, key, value, cartTTL).Err()
}

// Store loads and saves carts against an injected Storage. Every
// mutating handler saves after applying its change; the in-memory cart
// is authoritative within one request.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load returns the session's cart, or an empty cart when none is stored.
func (s *Store) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.storage.Get(ctx, cartKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("cart load: %w", err)
	}
	c := New()
	if raw == "" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return nil, fmt.Errorf("cart decode: %w", err)
	}
	return c, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := s.storage.Set(ctx, cartKey(sessionID), string(data)); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

// Clear persists an empty cart for the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.Save(ctx, sessionID, New())
}
