package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/ports"
)

// cooldownTTL basta con cubrir la espera de reenvío con holgura.
const cooldownTTL = 15 * time.Minute

// RedisCooldownStore hora de emisión del código bajo cooldown:{usuario}, en RFC3339Nano.
type RedisCooldownStore struct {
	redis *RedisClient
}

func NewRedisCooldownStore(r *RedisClient) ports.CooldownStore {
	return &RedisCooldownStore{redis: r}
}

func (s *RedisCooldownStore) key(k string) string {
	return fmt.Sprintf("cooldown:%s", k)
}

func (s *RedisCooldownStore) Start(ctx context.Context, key string, at time.Time) error {
	return s.redis.Set(ctx, s.key(key), []byte(at.UTC().Format(time.RFC3339Nano)), cooldownTTL)
}

func (s *RedisCooldownStore) StartedAt(ctx context.Context, key string) (time.Time, bool, error) {
	b, err := s.redis.Get(ctx, s.key(key))
	if errors.Is(err, errMiss) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache: leer temporizador: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, string(b))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cache: temporizador corrupto: %w", err)
	}
	return at, true, nil
}

// MemoryCooldownStore temporizadores en memoria del proceso. Las entradas con más de
// cooldownTTL se descartan al leerlas o en Sweep, igual que la expiración de Redis.
type MemoryCooldownStore struct {
	mu    sync.Mutex
	items map[string]time.Time
	nowFn func() time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{items: map[string]time.Time{}, nowFn: time.Now}
}

func (s *MemoryCooldownStore) Start(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = at
	return nil
}

func (s *MemoryCooldownStore) StartedAt(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.items[key]
	if ok && s.expired(at, s.nowFn()) {
		delete(s.items, key)
		return time.Time{}, false, nil
	}
	return at, ok, nil
}

// Sweep elimina los temporizadores vencidos y devuelve cuántos.
func (s *MemoryCooldownStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	n := 0
	for key, at := range s.items {
		if s.expired(at, now) {
			delete(s.items, key)
			n++
		}
	}
	return n
}

func (s *MemoryCooldownStore) expired(at, now time.Time) bool {
	return now.Sub(at) > cooldownTTL
}
