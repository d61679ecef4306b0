// AngelaMos | 2026
// security_test.go

package core

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "correct-horse-battery-staple")

	valid, err := VerifyPassword("correct-horse-battery-staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)

	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("whatever", "$bcrypt$v=19$m=1,t=1,p=1$salt$hash")
	assert.Error(t, err)
}

func TestVerifyPasswordWithRehash_CurrentParams(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	valid, newHash, err := VerifyPasswordWithRehash("correct-horse", hash)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, newHash, "a fresh hash should not trigger a rehash")
}

func TestVerifyPasswordWithRehash_StaleParams(t *testing.T) {
	// A hash produced with weaker parameters verifies but comes back with
	// an upgraded replacement.
	stale := staleHash(t, "correct-horse")

	valid, newHash, err := VerifyPasswordWithRehash("correct-horse", stale)
	require.NoError(t, err)
	assert.True(t, valid)
	require.NotEmpty(t, newHash)
	assert.NotEqual(t, stale, newHash)

	valid, err = VerifyPassword("correct-horse", newHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyPasswordTimingSafe_MissingHash(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("any-password", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)

	empty := ""
	valid, _, err = VerifyPasswordTimingSafe("any-password", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordTimingSafe_RealHash(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	valid, _, err := VerifyPasswordTimingSafe("correct-horse", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _, err = VerifyPasswordTimingSafe("wrong", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

// staleHash builds a valid hash under outdated cost parameters (t=2
// instead of the current t=1) so verification succeeds but a rehash is
// triggered.
func staleHash(t *testing.T, password string) string {
	t.Helper()

	salt := []byte("0123456789abcdef")
	staleTime := uint32(argonTime + 1)

	digest := argon2.IDKey(
		[]byte(password),
		salt,
		staleTime,
		argonMemory,
		argonThreads,
		argonKeyLen,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		staleTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
}
