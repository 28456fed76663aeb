package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

// RejectReason says which check refused a token. It is for logs only, callers
// of the API always see common.ErrorUnauthorized.
type RejectReason string

const (
	ReasonMissing          RejectReason = "missing"
	ReasonMalformed        RejectReason = "malformed"
	ReasonUnknownSubject   RejectReason = "unknown_subject"
	ReasonSignatureInvalid RejectReason = "signature_invalid"
	ReasonExpired          RejectReason = "expired"
	ReasonInactiveAccount  RejectReason = "inactive_account"
	ReasonStoreUnavailable RejectReason = "store_unavailable"
)

// RejectionError is returned by TokenValidator.Validate. It matches
// common.ErrorUnauthorized under errors.Is.
type RejectionError struct {
	Reason RejectReason
	Cause  error
}

func (e *RejectionError) Error() string {
	return "token rejected: " + string(e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return common.ErrorUnauthorized
}

// ReasonOf extracts the rejection reason from err, or "" if err is not a
// rejection.
func ReasonOf(err error) RejectReason {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

func reject(reason RejectReason, cause error) error {
	return &RejectionError{Reason: reason, Cause: cause}
}

// TokenValidator turns a bearer token into a Principal. Checks run in a fixed
// order: structure, session key, signature, expiry, then the live account
// state in the credential store.
type TokenValidator struct {
	keys  *KeyRegistry
	store CredentialStore
	opts  options
}

func NewTokenValidator(keys *KeyRegistry, store CredentialStore, opts ...Option) *TokenValidator {
	return &TokenValidator{keys: keys, store: store, opts: newOptions(opts)}
}

func (v *TokenValidator) Validate(ctx context.Context, rawToken string) (*Principal, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, reject(ReasonMissing, nil)
	}

	claims, err := ParseToken(rawToken, v.keyFor, v.opts.now)
	if err != nil {
		return nil, reject(classify(err), err)
	}

	lookupCtx, cancel := v.opts.lookupContext(ctx)
	defer cancel()

	user, err := v.store.FindActive(lookupCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, reject(ReasonInactiveAccount, err)
		}
		return nil, reject(ReasonStoreUnavailable, err)
	}
	if !user.Active {
		return nil, reject(ReasonInactiveAccount, nil)
	}

	p := &Principal{
		UserName: claims.Subject,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func (v *TokenValidator) keyFor(subject string) ([]byte, bool) {
	sk, ok := v.keys.Get(subject)
	if !ok {
		return nil, false
	}
	return sk.Key, true
}

// BearerToken pulls the token out of an Authorization header value. The scheme
// is matched case-insensitively. An empty result means no usable token.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
