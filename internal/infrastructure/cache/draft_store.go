package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/ports"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// DraftTTL vida de un borrador sin actividad.
const DraftTTL = 2 * time.Hour

// RedisDraftStore borradores serializados en JSON bajo draft:{id}.
type RedisDraftStore struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewRedisDraftStore ttl <= 0 usa DraftTTL.
func NewRedisDraftStore(r *RedisClient, ttl time.Duration) ports.DraftStore {
	if ttl <= 0 {
		ttl = DraftTTL
	}
	return &RedisDraftStore{redis: r, ttl: ttl}
}

func (s *RedisDraftStore) key(id string) string {
	return fmt.Sprintf("draft:%s", id)
}

// Save renueva el TTL en cada paso.
func (s *RedisDraftStore) Save(ctx context.Context, d *dto.ProductDraft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cache: serializar borrador: %w", err)
	}
	return s.redis.Set(ctx, s.key(d.ID), b, s.ttl)
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*dto.ProductDraft, error) {
	b, err := s.redis.Get(ctx, s.key(id))
	if errors.Is(err, errMiss) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache: leer borrador: %w", err)
	}
	var d dto.ProductDraft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("cache: borrador corrupto: %w", err)
	}
	return &d, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, s.key(id))
}

type memDraft struct {
	draft   dto.ProductDraft
	expires time.Time
}

// MemoryDraftStore borradores en memoria del proceso; expiran por inactividad.
type MemoryDraftStore struct {
	mu    sync.Mutex
	items map[string]memDraft
	ttl   time.Duration
	nowFn func() time.Time
}

// NewMemoryDraftStore ttl <= 0 usa DraftTTL.
func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	if ttl <= 0 {
		ttl = DraftTTL
	}
	return &MemoryDraftStore{items: map[string]memDraft{}, ttl: ttl, nowFn: time.Now}
}

// Save guarda una copia; el llamador puede seguir modificando su puntero.
func (s *MemoryDraftStore) Save(_ context.Context, d *dto.ProductDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[d.ID] = memDraft{draft: copyDraft(*d), expires: s.nowFn().Add(s.ttl)}
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*dto.ProductDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	if s.nowFn().After(it.expires) {
		delete(s.items, id)
		return nil, domain.ErrDraftNotFound
	}
	d := copyDraft(it.draft)
	return &d, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Sweep elimina los borradores vencidos; devuelve cuántos quitó.
func (s *MemoryDraftStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFn()
	n := 0
	for id, it := range s.items {
		if now.After(it.expires) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func copyDraft(d dto.ProductDraft) dto.ProductDraft {
	d.Product.Images = append([]entity.Image(nil), d.Product.Images...)
	return d
}
