package auth

import (
	"context"
	"time"
)

// Principal is the authenticated identity attached to a request once its
// token has been accepted.
type Principal struct {
	UserName  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
