// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool that backs
// the catalog's document collections.
//
// # Architecture
//
// This package is part of the Infrastructure layer. The pool is created once
// in cmd/api, handed to every repository by constructor injection and closed
// explicitly on shutdown. Nothing in this package holds global state.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recursos/internal/platform/constants"
)

// Options tunes the pool. Zero fields fall back to [DefaultOptions].
type Options struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration
	StatementTimeout  time.Duration
}

// DefaultOptions are the opinionated settings for the catalog workload.
var DefaultOptions = Options{
	MaxConns:          25,
	MinConns:          2,
	MaxConnLifetime:   60 * time.Minute,
	MaxConnIdleTime:   10 * time.Minute,
	HealthCheckPeriod: 1 * time.Minute,
	ConnectTimeout:    5 * time.Second,
	StatementTimeout:  constants.GlobalRequestTimeout,
}

// pingTimeout is the maximum duration for a health check ping.
const pingTimeout = 2 * time.Second

// NewPool creates and validates a new PostgreSQL connection pool.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - dsn: A libpq-compatible connection string or postgres:// URL.
//   - logger: Structured logger for pool-level events.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	return NewPoolWithOptions(ctx, dsn, DefaultOptions, logger)
}

// NewPoolWithOptions is [NewPool] with explicit tuning.
func NewPoolWithOptions(ctx context.Context, dsn string, opts Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	opts = opts.withDefaults()

	poolConfig.MaxConns = opts.MaxConns
	poolConfig.MinConns = opts.MinConns
	poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = opts.HealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	// Every physical connection gets a statement timeout so a stuck query
	// cannot outlive the request that issued it.
	statementTimeout := fmt.Sprintf("SET statement_timeout = '%dms'", opts.StatementTimeout.Milliseconds())
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, statementTimeout)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// Validate that we can actually reach the database.
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres_pool_connected",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(stats.MaxConns())),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions
	if o.MaxConns > 0 {
		d.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 {
		d.MinConns = o.MinConns
	}
	if o.MaxConnLifetime > 0 {
		d.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.MaxConnIdleTime > 0 {
		d.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.HealthCheckPeriod > 0 {
		d.HealthCheckPeriod = o.HealthCheckPeriod
	}
	if o.ConnectTimeout > 0 {
		d.ConnectTimeout = o.ConnectTimeout
	}
	if o.StatementTimeout > 0 {
		d.StatementTimeout = o.StatementTimeout
	}
	return d
}
