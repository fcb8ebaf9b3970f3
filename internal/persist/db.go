package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eqgo/server/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrDatabaseConfig marks a [database] section the tool cannot use.
var ErrDatabaseConfig = errors.New("invalid database config")

// DB owns the pgx pool that item template import and loading run on.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// NewDB validates cfg, connects and pings the server.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db %s/%s: %w", poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Database, err)
	}

	log.Info("database connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Duration("conn_max_lifetime", poolCfg.MaxConnLifetime),
	)
	return &DB{Pool: pool, log: log}, nil
}

// poolConfig maps the [database] section onto a pgx pool config.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	switch {
	case cfg.DSN == "":
		return nil, fmt.Errorf("%w: dsn is empty", ErrDatabaseConfig)
	case cfg.MaxOpenConns <= 0:
		return nil, fmt.Errorf("%w: max_open_conns must be positive, got %d", ErrDatabaseConfig, cfg.MaxOpenConns)
	case cfg.MaxIdleConns < 0 || cfg.MaxIdleConns > cfg.MaxOpenConns:
		return nil, fmt.Errorf("%w: max_idle_conns must be within 0..%d, got %d", ErrDatabaseConfig, cfg.MaxOpenConns, cfg.MaxIdleConns)
	case cfg.ConnMaxLifetime < 0:
		return nil, fmt.Errorf("%w: conn_max_lifetime is negative", ErrDatabaseConfig)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	// Zero keeps pgx's default lifetime.
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	return poolCfg, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
