package slotcache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache кеш ответов на запросы доступных слотов
// Любая запись, затрагивающая слоты, инвалидирует кеш целиком
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context)
}

const (
	keyPrefix  = "availslots"
	versionKey = "availslots:version"
)

// RedisCache кеш на redis с инвалидацией через счетчик версии:
// каждая инвалидация инкрементирует версию, старые ключи доживают свой TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewRedisCache создает кеш поверх подключенного redis-клиента
func NewRedisCache(client *redis.Client, ttl time.Duration, log Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

// BuildKey строит стабильный ключ кеша из параметров запроса
func BuildKey(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get возвращает закешированный ответ, если он есть
// Любая ошибка redis трактуется как промах - кеш не должен ломать запросы
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("slotcache: get failed: %v", err)
		}
		return nil, false
	}
	return data, true
}

// Set сохраняет ответ с TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), value, c.ttl).Err(); err != nil {
		c.log.Warn("slotcache: set failed: %v", err)
	}
}

// Invalidate сбрасывает весь кеш доступных слотов
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn("slotcache: invalidate failed: %v", err)
	}
}

func (c *RedisCache) versionedKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		c.log.Warn("slotcache: version read failed: %v", err)
	}
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, key)
}

// NoopCache заглушка для выключенного кеша
type NoopCache struct{}

// Get всегда промахивается
func (NoopCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

// Set ничего не делает
func (NoopCache) Set(ctx context.Context, key string, value []byte) {}

// Invalidate ничего не делает
func (NoopCache) Invalidate(ctx context.Context) {}

// NewRedisClient создает redis-клиент и проверяет соединение
// Возвращает nil при недоступном redis - вызывающий код переходит на NoopCache
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
