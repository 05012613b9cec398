package jwthelper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatherly/gatherly-api/internal/pkg/jwthelper"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("signing-key")

	t.Run("round trip", func(t *testing.T) {
		token, err := jwthelper.GenerateToken(key, 3, "test-agent")
		assert.NoError(t, err)

		claims, err := jwthelper.ParseToken(key, token)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), claims.ParticipantID)
		assert.Equal(t, "test-agent", claims.UserAgent)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		token, err := jwthelper.GenerateToken(key, 3, "test-agent")
		assert.NoError(t, err)

		_, err = jwthelper.ParseToken([]byte("other-key"), token)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := jwthelper.ParseToken(key, "not.a.token")
		assert.Error(t, err)
	})
}
