package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "manager", 7, 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, float64(7), claims["station_id"])
}

func TestNewAccessTokenOmitsZeroStation(t *testing.T) {
	at, err := NewAccessToken("secret", 1, "admin", 0, 15)
	require.NoError(t, err)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	_, present := tok.Claims.(jwt.MapClaims)["station_id"]
	assert.False(t, present, "admins without a station must not carry the claim")
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	h3 := HashRefreshRaw("token-b")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // sha256 hex
}

func TestRefreshTokensAreUnique(t *testing.T) {
	a, err := NewRefreshToken(30)
	require.NoError(t, err)
	b, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.Len(t, a.Raw, 96) // 48 random bytes hex encoded
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123", 4) // minimum cost keeps the test fast
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "admin123"))
	assert.False(t, VerifyPassword(hash, "admin124"))
}
