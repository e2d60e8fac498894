package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL backend behind a DATABASE_URL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Target is a DATABASE_URL resolved for database/sql and golang-migrate.
type Target struct {
	Dialect    Dialect
	DriverName string
	DSN        string
	MigrateURL string
}

// ParseURL resolves postgres://, postgresql:// and sqlite:// URLs.
func ParseURL(databaseURL string) (Target, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return Target{}, fmt.Errorf("parse database url: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		m := *u
		m.Scheme = "pgx5"
		return Target{Dialect: Postgres, DriverName: "pgx", DSN: databaseURL, MigrateURL: m.String()}, nil
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			return Target{}, fmt.Errorf("parse database url: missing sqlite file path")
		}
		return Target{
			Dialect:    SQLite,
			DriverName: "sqlite",
			DSN:        "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			MigrateURL: "sqlite://" + path,
		}, nil
	default:
		return Target{}, fmt.Errorf("parse database url: unsupported scheme %q", u.Scheme)
	}
}

// Open connects to databaseURL and pings it.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (*sql.DB, error) {
	target, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(target.DriverName, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if target.Dialect == SQLite {
		// SQLite allows a single writer; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("✅ database connected", zap.String("dialect", string(target.Dialect)))
	return db, nil
}
