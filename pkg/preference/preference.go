package preference

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"rentaid-waitlist/pkg/models"
)

// KeyPrefix namespaces the stored user type per visitor
const KeyPrefix = "rentaid-user-type:"

// Store remembers the last variant a visitor picked
type Store interface {
	Get(ctx context.Context, visitorID string) (models.Variant, bool, error)
	Set(ctx context.Context, visitorID string, variant models.Variant) error
}

func Key(visitorID string) string {
	return KeyPrefix + visitorID
}

// RedisStore keeps preferences in redis with an optional expiry
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreFromURL parses a redis:// URL
func NewRedisStoreFromURL(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(redis.NewClient(opts), ttl), nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get ignores stored values that are not a known variant
func (r *RedisStore) Get(ctx context.Context, visitorID string) (models.Variant, bool, error) {
	val, err := r.client.Get(ctx, Key(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	variant, ok := models.ParseVariant(val)
	return variant, ok, nil
}

func (r *RedisStore) Set(ctx context.Context, visitorID string, variant models.Variant) error {
	return r.client.Set(ctx, Key(visitorID), string(variant), r.ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]models.Variant
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]models.Variant)}
}

func (m *MemoryStore) Get(_ context.Context, visitorID string) (models.Variant, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[Key(visitorID)]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, visitorID string, variant models.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[Key(visitorID)] = variant
	return nil
}
