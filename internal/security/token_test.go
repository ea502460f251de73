package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, err := tm.GenerateAccessToken(1, "owner@reelstudio.test")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), claims.UserID)
	assert.Equal(t, "owner@reelstudio.test", claims.Email)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	other := NewTokenManager("other-secret", 15)

	token, err := tm.GenerateAccessToken(1, "")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -1)

	token, err := tm.GenerateAccessToken(1, "")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	_, err := tm.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
