package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	tok, err := svc.Issue("kitchen-tablet")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := svc.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "kitchen-tablet", claims.Subject)
}

func TestTokenService_Validate_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)

	forged, err := other.Issue("x")
	require.NoError(t, err)

	expiredSvc := NewTokenService("secret", time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue("x")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x", Issuer: tokenIssuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x", Issuer: "elsewhere"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not-a-token",
		"wrong secret":   forged.AccessToken,
		"expired":        expired.AccessToken,
		"alg none":       none,
		"foreign issuer": foreignIssuer,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_MissingSecret(t *testing.T) {
	svc := NewTokenService("", 0)

	_, err := svc.Issue("x")
	assert.ErrorIs(t, err, ErrTokenSecretMissing)
	_, err = svc.Validate("x")
	assert.ErrorIs(t, err, ErrTokenSecretMissing)
	assert.Equal(t, 24*time.Hour, svc.ttl)
}

func TestTokenService_EmptySubject(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Issue("")
	assert.Error(t, err)
}
