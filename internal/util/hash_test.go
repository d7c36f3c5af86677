package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, HashPassword("pw1"), HashPassword("pw1"))
	})

	t.Run("matches known SHA-256 vector", func(t *testing.T) {
		// echo -n password | sha256sum
		assert.Equal(t,
			"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			HashPassword("password"))
	})

	t.Run("produces fixed-length hex output", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[0-9a-f]{64}$`)
		for _, secret := range []string{"", "a", "pw1", "correct horse battery staple"} {
			assert.True(t, pattern.MatchString(HashPassword(secret)), "digest for %q", secret)
		}
	})

	t.Run("different inputs produce different digests", func(t *testing.T) {
		assert.NotEqual(t, HashPassword("pw1"), HashPassword("pw2"))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("secret", "secret"))
	assert.False(t, ConstantTimeEqual("secret", "Secret"))
	assert.False(t, ConstantTimeEqual("secret", "secret "))
	assert.False(t, ConstantTimeEqual("", "secret"))
}
