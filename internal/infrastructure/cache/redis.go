// Package cache almacena los borradores del asistente y los temporizadores de reenvío,
// en Redis cuando está configurado o en memoria del proceso.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/cartem-panel/pkg/config"
)

// errMiss la clave no existe.
var errMiss = errors.New("cache: clave inexistente")

// RedisClient envuelve go-redis con los pocos métodos que usan los stores.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient conecta y verifica con PING.
func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: conexión a redis fallida: %w", err)
	}
	return &RedisClient{client: client}, nil
}

// Set guarda value con TTL (0 = sin expiración).
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get devuelve errMiss si la clave no existe.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	return b, err
}

func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
