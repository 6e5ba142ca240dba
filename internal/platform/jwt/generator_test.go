package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	const secret = "generator-secret"
	fixed := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(secret, 2*time.Hour)
	gen.now = func() time.Time { return fixed }

	signed, err := gen.GenerateToken(42, "matis@club.test")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.NewParser(jwt.WithoutClaimsValidation()).ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)

	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "matis@club.test", claims["email"])
	assert.Equal(t, Issuer, claims["iss"])
	assert.Equal(t, float64(fixed.Unix()), claims["iat"])
	assert.Equal(t, float64(fixed.Add(2*time.Hour).Unix()), claims["exp"])
}

func TestNewGenerator_DefaultExpiration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultExpiration, NewGenerator("s", 0).expiration)
}

func TestGenerator_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("", time.Hour).GenerateToken(1, "matis@club.test")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, "s3cret")
		t.Setenv(EnvKeyJWTExpiration, "")

		assert.Equal(t, Config{Secret: "s3cret", Expiration: DefaultExpiration}, LoadConfig())
	})

	t.Run("custom expiration", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, "s3cret")
		t.Setenv(EnvKeyJWTExpiration, "90m")

		assert.Equal(t, 90*time.Minute, LoadConfig().Expiration)
	})

	t.Run("invalid expiration falls back", func(t *testing.T) {
		t.Setenv(EnvKeyJWTSecret, "s3cret")
		t.Setenv(EnvKeyJWTExpiration, "forever")

		assert.Equal(t, DefaultExpiration, LoadConfig().Expiration)
	})
}
