package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by every session token. The subject is the username, the
// session key that signs the token is looked up by it.
type Claims struct {
	jwt.RegisteredClaims
}

var (
	errMissingSubject = errors.New("token has no subject")
	errUnknownSubject = errors.New("no session key for subject")
)

// GenerateToken signs an HS256 token for subject with key. The returned expiry
// is the one written into the token, truncated to whole seconds.
func GenerateToken(subject string, key []byte, issuedAt time.Time, ttl time.Duration) (string, time.Time, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, claims.ExpiresAt.Time, nil
}

// ParseToken verifies tokenString against the key keyFor returns for its
// unverified subject, then checks expiry against now. A token is expired from
// the instant now reaches its exp claim.
func ParseToken(tokenString string, keyFor func(subject string) ([]byte, bool), now func() time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		subject, err := t.Claims.GetSubject()
		if err != nil || subject == "" {
			return nil, errMissingSubject
		}
		key, ok := keyFor(subject)
		if !ok {
			return nil, errUnknownSubject
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// classify maps a ParseToken error onto the reason a token was refused.
func classify(err error) RejectReason {
	switch {
	case errors.Is(err, errUnknownSubject):
		return ReasonUnknownSubject
	case errors.Is(err, errMissingSubject), errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonMalformed
	}
}
