package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/goldmanager/internal/server/migrations"
	"github.com/dmitrijs2005/goldmanager/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends database-backed repositories and owns the
// connection pool.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect string
	users   *users.SQLRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewSQLRepositoryManager opens dsn and brings the schema up to date.
func NewSQLRepositoryManager(ctx context.Context, dsn string) (*SQLRepositoryManager, error) {
	d, err := resolveDriver(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.name, d.source)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := newSQLRepositoryManager(db, d.dialect)

	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func newSQLRepositoryManager(db *sql.DB, dialect string) *SQLRepositoryManager {
	return &SQLRepositoryManager{db: db, dialect: dialect, users: users.NewSQLRepository(db)}
}

// Users returns the users repository bound to the pool.
func (m *SQLRepositoryManager) Users() users.Repository {
	return m.users
}

// RunMigrations applies the embedded goose migrations.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
