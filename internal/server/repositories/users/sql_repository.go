package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/dbx"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
)

// SQLRepository stores users in the `users` table. The queries use $n
// placeholders, which both pgx and modernc SQLite accept.
type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := exists(ctx, tx, user.UserName)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		query :=
			`INSERT INTO users (username, password_digest, active)
			 VALUES ($1, $2, $3)
			 `
		if _, err := tx.ExecContext(ctx, query, user.UserName, user.PasswordDigest, user.Active); err != nil {
			if dbx.IsUniqueViolation(err) {
				return common.ErrorAlreadyExists
			}
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *SQLRepository) Exists(ctx context.Context, userName string) (bool, error) {
	return exists(ctx, r.db, userName)
}

func exists(ctx context.Context, db dbx.DBTX, userName string) (bool, error) {
	query :=
		`SELECT COUNT(*) FROM users
		 WHERE username = $1
		 `

	var n int64
	if err := db.QueryRowContext(ctx, query, userName).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) FindActive(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT username, password_digest, active FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&user.UserName, &user.PasswordDigest, &user.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, userName, digest string) (bool, error) {
	query :=
		`UPDATE users SET password_digest = $1
		 WHERE username = $2
		 `
	return r.update(ctx, query, digest, userName)
}

func (r *SQLRepository) UpdateActive(ctx context.Context, userName string, active bool) (bool, error) {
	query :=
		`UPDATE users SET active = $1
		 WHERE username = $2
		 `
	return r.update(ctx, query, active, userName)
}

func (r *SQLRepository) update(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT username, password_digest, active FROM users
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UserName, &u.PasswordDigest, &u.Active); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
