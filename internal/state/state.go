package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"
)

// TransientStore keeps short-lived per-session values such as inline
// notices. Expired or missing keys read back as "".
type TransientStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisTransientStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisTransientStore(redisClient *redis.Client) TransientStore {
	return &redisTransientStore{
		redisClient: redisClient,
		keyPrefix:   "storefront:transient:",
	}
}

func (s *redisTransientStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get transient value %s: %w", key, err)
	}
	return val, nil
}

func (s *redisTransientStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set transient value %s: %w", key, err)
	}
	return nil
}

func (s *redisTransientStore) Delete(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete transient value %s: %w", key, err)
	}
	return nil
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryTransientStore is the single-process TransientStore.
type MemoryTransientStore struct {
	clock   clock.Clock
	mutex   sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryTransientStore is the single-process fallback used when Redis is
// disabled. Expired entries are dropped lazily on access and by Sweep.
func NewMemoryTransientStore(clk clock.Clock) *MemoryTransientStore {
	return &MemoryTransientStore{
		clock:   clk,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryTransientStore) Get(_ context.Context, key string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", nil
	}
	if !s.clock.Now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (s *MemoryTransientStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryTransientStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.entries, key)
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (s *MemoryTransientStore) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.clock.Now()
	dropped := 0
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryTransientStore) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
