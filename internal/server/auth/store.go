package auth

import (
	"context"

	"github.com/dmitrijs2005/goldmanager/internal/server/models"
)

// CredentialStore is the read side of the user repository the auth core
// needs. FindActive returns the user whatever its active flag, or
// common.ErrorNotFound.
type CredentialStore interface {
	FindActive(ctx context.Context, userName string) (*models.User, error)
}
