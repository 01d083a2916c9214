package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"NewsDigest/internal/config"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DB is a pooled connection plus the statement builder matching its dialect.
type DB struct {
	*sqlx.DB
	dialect string
	builder squirrel.StatementBuilderType
}

// Open connects and pings the configured database.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	conn, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{DB: conn, dialect: cfg.Driver}
	switch cfg.Driver {
	case DialectSQLite:
		// A single writer avoids SQLITE_BUSY between pooled connections.
		conn.SetMaxOpenConns(1)
		db.builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	case DialectPostgres:
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	default:
		_ = conn.Close()
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Dialect reports which SQL flavour the connection speaks.
func (db *DB) Dialect() string {
	return db.dialect
}
