package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minJWTSecretLength = 32

// DefaultAccessTokenTTL is used when no lifetime is configured.
const DefaultAccessTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for any token that fails validation,
// regardless of the underlying cause.
var ErrInvalidToken = errors.New("security: invalid token")

// AccessClaims carries the identity claims embedded in an access token.
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-SHA256 signed access tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenService builds a token service. The secret must be at least 32
// characters; a shorter secret is a configuration error and is rejected
// outright.
func NewTokenService(secret, issuer, audience string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minJWTSecretLength {
		return nil, fmt.Errorf("security: jwt secret must be at least %d characters", minJWTSecretLength)
	}
	if issuer == "" {
		return nil, errors.New("security: jwt issuer is required")
	}
	if audience == "" {
		return nil, errors.New("security: jwt audience is required")
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// WithClock overrides the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Generate signs a token for the user with subject, email, role, a unique
// token identifier and issued-at/expiry claims.
func (s *TokenService) Generate(userID int64, email, role string) (string, error) {
	now := s.now().UTC()

	claims := AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("security: sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token with zero clock skew tolerance.
// Signature, issuer, audience and expiry must all check out; any failure
// collapses to ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
