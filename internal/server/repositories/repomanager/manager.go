// Package repomanager opens the credential store selected by the DSN and
// vends its repositories. PostgreSQL goes through pgx, SQLite through
// modernc, and an empty DSN yields an in-memory store.
package repomanager

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/goldmanager/internal/server/repositories/users"
)

var ErrUnsupportedDSN = errors.New("unsupported database DSN")

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close() error
}

// driver describes how a DSN is opened.
type driver struct {
	name    string // database/sql driver name
	dialect string // goose dialect
	source  string // data source handed to sql.Open
}

func resolveDriver(dsn string) (driver, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return driver{name: "pgx", dialect: "pgx", source: dsn}, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return driver{name: "sqlite", dialect: "sqlite3", source: strings.TrimPrefix(dsn, "sqlite://")}, nil
	case strings.HasPrefix(dsn, "file:"):
		return driver{name: "sqlite", dialect: "sqlite3", source: dsn}, nil
	default:
		return driver{}, ErrUnsupportedDSN
	}
}

// NewRepositoryManager opens the store for dsn and applies migrations.
func NewRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return NewSQLRepositoryManager(ctx, dsn)
}
