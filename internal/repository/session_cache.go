package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"doctor-ai/internal/domain"
)

const sessionIndexKey = "doctorai:sessions:index"

// RedisSessionCache cachea el listado de sesiones con un TTL corto.
// Es opcional: todos los métodos toleran receptor o cliente nil, así el
// servicio funciona igual sin Redis configurado.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionCache(client *redis.Client, ttl time.Duration) *RedisSessionCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSessionCache{client: client, ttl: ttl}
}

func (c *RedisSessionCache) Get(ctx context.Context) ([]domain.SessionInfo, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, sessionIndexKey).Bytes()
	if err != nil {
		return nil, false
	}
	var sessions []domain.SessionInfo
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, false
	}
	return sessions, true
}

func (c *RedisSessionCache) Set(ctx context.Context, sessions []domain.SessionInfo) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(sessions)
	if err != nil {
		return
	}
	// Best-effort: los errores de Redis no se propagan.
	_ = c.client.Set(ctx, sessionIndexKey, raw, c.ttl).Err()
}

func (c *RedisSessionCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, sessionIndexKey).Err()
}
