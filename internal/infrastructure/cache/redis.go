// Package cache implementa la cache de reportes sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/pkg/config"
)

var _ ports.ReportCache = (*ReportCache)(nil)

// NewRedisClient crea el cliente y verifica la conexión con un PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// ReportCache guarda reportes como JSON. Cada compañía tiene un contador de versión
// que forma parte de la clave: Invalidate lo incrementa y las entradas anteriores
// quedan huérfanas hasta que expiran.
type ReportCache struct {
	client *redis.Client
	prefix string
}

// NewReportCache construye la cache. prefix separa entornos que comparten Redis.
func NewReportCache(client *redis.Client, prefix string) *ReportCache {
	if prefix == "" {
		prefix = "ventas"
	}
	return &ReportCache{client: client, prefix: prefix}
}

func (c *ReportCache) versionKey(companyID string) string {
	return fmt.Sprintf("%s:reports:%s:version", c.prefix, companyID)
}

func (c *ReportCache) entryKey(companyID string, version int64, key string) string {
	return fmt.Sprintf("%s:reports:%s:v%d:%s", c.prefix, companyID, version, key)
}

func (c *ReportCache) version(ctx context.Context, companyID string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(companyID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return v, nil
}

// Get decodifica la entrada en dst. found=false si no existe; version es la que hay
// que pasar a Set si el reporte se construye a continuación.
func (c *ReportCache) Get(ctx context.Context, companyID, key string, dst any) (bool, int64, error) {
	version, err := c.version(ctx, companyID)
	if err != nil {
		return false, 0, err
	}
	raw, err := c.client.Get(ctx, c.entryKey(companyID, version, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, version, nil
	}
	if err != nil {
		return false, 0, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// entrada ilegible: se trata como ausente
		return false, version, nil
	}
	return true, version, nil
}

// Set guarda value bajo la versión leída en Get. Si hubo una invalidación entretanto,
// la entrada queda huérfana y expira sola.
func (c *ReportCache) Set(ctx context.Context, companyID, key string, version int64, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: serializar %s: %w", key, err)
	}
	return c.client.Set(ctx, c.entryKey(companyID, version, key), raw, ttl).Err()
}

// Invalidate descarta todos los reportes cacheados de la compañía.
func (c *ReportCache) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Incr(ctx, c.versionKey(companyID)).Err()
}
