package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("produces a verifiable hash", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("mypassword")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.True(t, VerifyPassword("mypassword", hash))
	})

	t.Run("never stores plaintext", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("pw123")
		require.NoError(t, err)
		assert.NotEqual(t, "pw123", hash)
		assert.NotContains(t, hash, "pw123")
	})

	t.Run("salt varies per call", func(t *testing.T) {
		t.Parallel()
		first, err := HashPassword("same-input")
		require.NoError(t, err)
		second, err := HashPassword("same-input")
		require.NoError(t, err)
		// The salt is generated internally per call and embedded in the
		// output, so two hashes of the same input differ but both verify.
		assert.NotEqual(t, first, second)
		assert.True(t, VerifyPassword("same-input", first))
		assert.True(t, VerifyPassword("same-input", second))
	})

	t.Run("rejects empty password", func(t *testing.T) {
		t.Parallel()
		_, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("rejects passwords over the bcrypt limit", func(t *testing.T) {
		t.Parallel()
		_, err := HashPassword(strings.Repeat("x", 100))
		assert.Error(t, err)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correctpassword")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		assert.True(t, VerifyPassword("correctpassword", hash))
	})

	t.Run("incorrect password returns false, not an error", func(t *testing.T) {
		t.Parallel()
		assert.False(t, VerifyPassword("wrongpassword", hash))
	})

	t.Run("garbage hash returns false", func(t *testing.T) {
		t.Parallel()
		assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
	})
}
