package auth

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA3Hasher_Hash(t *testing.T) {
	h := NewSHA3Hasher()

	got, err := h.Hash("abc")
	require.NoError(t, err)
	// SHA3-256("abc") test vector.
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", got)

	again, err := h.Hash("abc")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSHA3Hasher_EmptyIsValidationError(t *testing.T) {
	_, err := NewSHA3Hasher().Hash("")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSHA3Hasher_Matches(t *testing.T) {
	h := NewSHA3Hasher()
	digest, err := h.Hash("secret")
	require.NoError(t, err)

	assert.True(t, h.Matches("secret", digest))
	assert.True(t, h.Matches("secret", strings.ToUpper(digest)))
	assert.False(t, h.Matches("Secret", digest))
	assert.False(t, h.Matches("", digest))
	assert.False(t, h.Matches("secret", ""))
}

func TestArgon2Hasher(t *testing.T) {
	h, err := NewArgon2Hasher("server-pepper")
	require.NoError(t, err)

	digest, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	again, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, digest, again)

	assert.True(t, h.Matches("secret", digest))
	assert.False(t, h.Matches("secret2", digest))
	assert.False(t, h.Matches("", digest))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, common.ErrorValidation)

	other, err := NewArgon2Hasher("another-pepper")
	require.NoError(t, err)
	assert.False(t, other.Matches("secret", digest))

	sha, err := NewSHA3Hasher().Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, sha, digest)
}

func TestNewArgon2Hasher_ShortPepper(t *testing.T) {
	_, err := NewArgon2Hasher("short")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestNewHasher(t *testing.T) {
	tests := []struct {
		algorithm string
		pepper    string
		want      any
		wantErr   bool
	}{
		{algorithm: "", want: SHA3Hasher{}},
		{algorithm: "SHA3", want: SHA3Hasher{}},
		{algorithm: "argon2id", pepper: "pepper-pepper", want: &Argon2Hasher{}},
		{algorithm: "argon2id", pepper: "", wantErr: true},
		{algorithm: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			h, err := NewHasher(tt.algorithm, tt.pepper)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrorValidation)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, h)
		})
	}
}
