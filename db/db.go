// Package db provides database connectivity and migration functionality for
// the minblog application. It establishes the pgx connection pool used by all
// store accessors, runs schema migrations at startup, and classifies driver
// errors so services can distinguish transient backend failures from
// permanent ones.
package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/golang-migrate/migrate/v4"
	// The file source driver for golang-migrate, imported for its side effect
	// of registering the "file://" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	// lib/pq backs golang-migrate's postgres driver when it is handed a DSN.
	_ "github.com/lib/pq"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/minblog-go/apperror"
	"github.com/user/minblog-go/config"
)

// NewPool establishes a pgxpool connection pool from the given configuration
// and verifies connectivity with a ping before returning it.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.MaxSize,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database fails fast instead of
	// hanging the startup sequence.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s", cfg.DBName), err)
	}

	return pool, nil
}

// getDSN constructs a DSN string from PoolConfig suitable for golang-migrate,
// whose postgres driver speaks the lib/pq DSN dialect.
func getDSN(cfg *config.PoolConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// RunMigrations applies any pending database migrations from the given
// directory. The users table's UNIQUE constraint on username lives here, and
// it is the authoritative guard against duplicate registrations; the
// application-level existence check is only a fast-path courtesy.
func RunMigrations(cfg *config.PoolConfig, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, getDSN(cfg))
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	defer func() {
		// m.Close returns separate errors for the source and the database
		// handle; neither failing is actionable beyond logging.
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			fmt.Printf("warning: error closing migration source: %v\n", srcErr)
		}
		if dbErr != nil {
			fmt.Printf("warning: error closing migration database instance: %v\n", dbErr)
		}
	}()

	// ErrNoChange means the schema is already current, which is not a failure.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	return nil
}

// IsTransient reports whether err looks like a temporary backend failure
// (timeout, dropped connection) that the client could reasonably retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// StoreError wraps a driver error for the handler boundary: transient
// failures become 503-class UnavailableErrors, everything else a generic
// DatabaseError. The client-safe message is the caller's; the driver detail
// stays wrapped for server-side logging.
func StoreError(message string, err error) *apperror.AppError {
	if IsTransient(err) {
		return apperror.NewUnavailableError(message, err)
	}
	return apperror.NewDatabaseError(message, err)
}
