package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brandonleon/carbsmart/internal/domain/dto"
)

const tokenIssuer = "carbsmart"

var (
	// ErrInvalidToken is returned for malformed, expired or forged tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenSecretMissing is returned when no signing secret is configured.
	ErrTokenSecretMissing = errors.New("jwt secret key not configured")
)

// TokenService issues and verifies HS256 bearer tokens for API clients.
type TokenService interface {
	Issue(subject string) (*dto.TokenResponse, error)
	Validate(tokenString string) (*dto.Claims, error)
}

// TokenServiceImpl implements TokenService.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a token service signing with secret. Tokens live
// for ttl (24h when ttl <= 0).
func NewTokenService(secret string, ttl time.Duration) *TokenServiceImpl {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenServiceImpl{secretKey: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token for subject.
func (s *TokenServiceImpl) Issue(subject string) (*dto.TokenResponse, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrTokenSecretMissing
	}
	if subject == "" {
		return nil, errors.New("token subject is required")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

// Validate verifies the signature, issuer and time claims of tokenString.
func (s *TokenServiceImpl) Validate(tokenString string) (*dto.Claims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrTokenSecretMissing
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &dto.Claims{Subject: claims.Subject}, nil
}
