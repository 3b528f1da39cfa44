package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Label is the capitalised type used in user-facing messages.
func (t TokenType) Label() string {
	switch t {
	case AccessToken:
		return "Access"
	case RefreshToken:
		return "Refresh"
	default:
		return string(t)
	}
}

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and missing claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a well-formed token past its exp.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongTokenType is returned when the caller required a specific type.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims are the JWT claims issued by TokenService. Subject carries the
// username and ID carries the jti used as the revocation key.
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Identity returns the username the token was issued for.
func (c *Claims) Identity() string { return c.Subject }

// JTI returns the unique token id.
func (c *Claims) JTI() string { return c.ID }

// Expiry returns the expiry instant, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// TokenService signs and validates HS256 tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a service signing with secret.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for issuing and validation.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

// IssueAccess returns a signed access token for identity.
func (s *TokenService) IssueAccess(identity string) (string, error) {
	return s.issue(identity, AccessToken, s.accessTTL)
}

// IssueRefresh returns a signed refresh token for identity.
func (s *TokenService) IssueRefresh(identity string) (string, error) {
	return s.issue(identity, RefreshToken, s.refreshTTL)
}

func (s *TokenService) issue(identity string, typ TokenType, ttl time.Duration) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("auth: issue %s token: empty identity", typ)
	}

	now := s.now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and decodes the claims. When
// expected is non-empty the token type must match it.
func (s *TokenService) Validate(tokenStr string, expected TokenType) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing sub or jti", ErrInvalidToken)
	}
	if claims.Type != AccessToken && claims.Type != RefreshToken {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidToken, claims.Type)
	}
	if expected != "" && claims.Type != expected {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongTokenType, expected, claims.Type)
	}

	return claims, nil
}
