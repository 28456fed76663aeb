// Package users is the credential store: lookup and maintenance of login
// accounts keyed by username.
package users

import (
	"context"

	"github.com/dmitrijs2005/goldmanager/internal/server/models"
)

// Repository is implemented by SQLRepository and MemoryRepository.
// Lookups of unknown usernames return common.ErrorNotFound; Create of an
// existing username returns common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Exists(ctx context.Context, userName string) (bool, error)
	FindActive(ctx context.Context, userName string) (*models.User, error)
	UpdatePassword(ctx context.Context, userName, digest string) (bool, error)
	UpdateActive(ctx context.Context, userName string, active bool) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]models.User, error)
}
