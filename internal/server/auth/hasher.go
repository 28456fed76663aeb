package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/sha3"
)

// Supported PasswordHasher algorithms.
const (
	HashSHA3     = "sha3"
	HashArgon2ID = "argon2id"
)

// MinPepperSize is the shortest pepper the argon2id hasher accepts.
const MinPepperSize = 8

// PasswordHasher turns a plaintext password into the digest kept by the
// credential store and checks candidates against it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// SHA3Hasher produces lowercase hex SHA3-256 digests. No salt is mixed in,
// the stored digest is the whole comparison basis.
type SHA3Hasher struct{}

func NewSHA3Hasher() SHA3Hasher {
	return SHA3Hasher{}
}

func (SHA3Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password is empty", common.ErrorValidation)
	}
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

// Matches compares in constant time. Digests are accepted in either case.
func (h SHA3Hasher) Matches(plaintext, digest string) bool {
	return matches(h, plaintext, digest)
}

// Argon2Hasher derives hex argon2id digests keyed with a server-wide pepper.
// The pepper is fixed for the lifetime of the store, so digests stay
// deterministic and the stored value is still the only comparison basis.
type Argon2Hasher struct {
	pepper []byte
}

func NewArgon2Hasher(pepper string) (*Argon2Hasher, error) {
	if len(pepper) < MinPepperSize {
		return nil, fmt.Errorf("%w: argon2id pepper must be at least %d bytes", common.ErrorValidation, MinPepperSize)
	}
	return &Argon2Hasher{pepper: []byte(pepper)}, nil
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password is empty", common.ErrorValidation)
	}
	key := argon2.IDKey([]byte(plaintext), h.pepper, 1, 64*1024, 4, 32)
	defer common.WipeByteArray(key)
	return hex.EncodeToString(key), nil
}

func (h *Argon2Hasher) Matches(plaintext, digest string) bool {
	return matches(h, plaintext, digest)
}

func matches(h PasswordHasher, plaintext, digest string) bool {
	candidate, err := h.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(strings.ToLower(digest))) == 1
}

// NewHasher returns the hasher named by algorithm. Changing the algorithm or
// the pepper invalidates every stored digest.
func NewHasher(algorithm, pepper string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", HashSHA3:
		return NewSHA3Hasher(), nil
	case HashArgon2ID:
		return NewArgon2Hasher(pepper)
	default:
		return nil, fmt.Errorf("%w: unknown password hash %q", common.ErrorValidation, algorithm)
	}
}
