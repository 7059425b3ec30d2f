package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/pkg/config"
)

// Límites por defecto del pool de la API.
const (
	defaultMaxConns        = 25
	defaultMinConns        = 2
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = 30 * time.Minute
)

// PoolOptions límites del pool. Los valores cero usan los de NewPool.
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// NewPool crea el pool de PostgreSQL, registra el codec NUMERIC -> decimal.Decimal
// y verifica la conexión con un ping. El worker y ventasctl pasan límites más bajos.
func NewPool(ctx context.Context, cfg config.DBConfig, opts ...PoolOptions) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig arma la configuración sin abrir conexiones.
func poolConfig(cfg config.DBConfig, opts ...PoolOptions) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = defaultMaxConns
	pc.MinConns = defaultMinConns
	for _, o := range opts {
		if o.MaxConns > 0 {
			pc.MaxConns = o.MaxConns
		}
		if o.MinConns > 0 {
			pc.MinConns = o.MinConns
		}
	}
	if pc.MinConns > pc.MaxConns {
		pc.MinConns = pc.MaxConns
	}
	pc.MaxConnLifetime = defaultMaxConnLifetime
	pc.MaxConnIdleTime = defaultMaxConnIdleTime
	pc.HealthCheckPeriod = time.Minute

	// Docker y algunos proveedores gestionados solo enrutan IPv4.
	pc.ConnConfig.DialFunc = dialPreferIPv4

	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// dialPreferIPv4 intenta tcp4 y, si falla, el dial normal.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	if network == "tcp" {
		if conn, err := d.DialContext(ctx, "tcp4", addr); err == nil {
			return conn, nil
		}
	}
	return d.DialContext(ctx, network, addr)
}
