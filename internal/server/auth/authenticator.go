package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

// SessionKeySize is the length in bytes of every per-login signing key.
const SessionKeySize = 32

// IssuedToken is what a successful login hands back.
type IssuedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authenticator checks username/password pairs and issues session tokens.
// Each successful login mints a fresh random key for the user, which replaces
// the previous one in the KeyRegistry.
type Authenticator struct {
	store  CredentialStore
	hasher PasswordHasher
	keys   *KeyRegistry
	ttl    time.Duration
	opts   options
}

func NewAuthenticator(store CredentialStore, hasher PasswordHasher, keys *KeyRegistry, ttl time.Duration, opts ...Option) *Authenticator {
	return &Authenticator{
		store:  store,
		hasher: hasher,
		keys:   keys,
		ttl:    ttl,
		opts:   newOptions(opts),
	}
}

// generateKey is replaced in tests to simulate a failing random source.
var generateKey = common.GenerateRandByteArray

// unknownUserDigest is compared against when the user does not exist so a
// miss costs the same hash as a wrong password.
const unknownUserDigest = "0000000000000000000000000000000000000000000000000000000000000000"

// Authenticate returns a token when the user exists, is active and the
// password matches. Blank input is a validation error. Every other failure is
// common.ErrorUnauthorized with the detail only in the debug log.
func (a *Authenticator) Authenticate(ctx context.Context, userName, password string) (*IssuedToken, error) {
	if common.IsBlank(userName) {
		return nil, fmt.Errorf("%w: username is mandatory", common.ErrorValidation)
	}
	if common.IsBlank(password) {
		return nil, fmt.Errorf("%w: password is mandatory", common.ErrorValidation)
	}

	log := a.opts.logger.With("user", userName)

	// Read before the lookup: a password change or deactivation that revokes
	// the user after this point makes the key install below fail.
	gen := a.keys.Generation(userName)

	lookupCtx, cancel := a.opts.lookupContext(ctx)
	user, err := a.store.FindActive(lookupCtx, userName)
	cancel()
	if err != nil {
		a.hasher.Matches(password, unknownUserDigest)
		if errors.Is(err, common.ErrorNotFound) {
			log.Debug(ctx, "login rejected", "reason", "unknown_user")
		} else {
			log.Warn(ctx, "login rejected", "reason", "store_unavailable", "error", err)
		}
		return nil, common.ErrorUnauthorized
	}

	if !a.hasher.Matches(password, user.PasswordDigest) {
		log.Debug(ctx, "login rejected", "reason", "bad_password")
		return nil, common.ErrorUnauthorized
	}
	if !user.Active {
		log.Debug(ctx, "login rejected", "reason", "inactive_account")
		return nil, common.ErrorUnauthorized
	}

	key, err := generateKey(SessionKeySize)
	if err != nil {
		log.Error(ctx, "session key generation failed", "error", err)
		return nil, common.ErrorInternal
	}
	defer common.WipeByteArray(key)

	now := a.opts.now()
	token, expiresAt, err := GenerateToken(userName, key, now, a.ttl)
	if err != nil {
		log.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	if _, ok := a.keys.PutIfGeneration(userName, key, now, gen); !ok {
		log.Info(ctx, "login rejected", "reason", "revoked_during_login")
		return nil, common.ErrorUnauthorized
	}
	log.Info(ctx, "login accepted", "expires_at", expiresAt)

	return &IssuedToken{Token: token, IssuedAt: now, ExpiresAt: expiresAt}, nil
}

// Logout drops the user's session key, which invalidates every token issued
// to them. It reports whether a session existed.
func (a *Authenticator) Logout(ctx context.Context, userName string) bool {
	removed := a.keys.Remove(userName)
	if removed {
		a.opts.logger.Info(ctx, "logout", "user", userName)
	}
	return removed
}

func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}
