package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
)

// Tokens issues signed tokens.
type Tokens interface {
	IssueAccess(identity string) (string, error)
	IssueRefresh(identity string) (string, error)
}

// SignupInput is the signup payload.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=45"`
	Email    string `json:"email"    validate:"required,email,max=80"`
	Password string `json:"password" validate:"required,max_bytes=72"` // bcrypt rejects input past 72 bytes
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is returned by Login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users     repositories.UserStore
	blocklist repositories.TokenBlocklist
	tokens    Tokens
}

func NewAuthService(users repositories.UserStore, blocklist repositories.TokenBlocklist, tokens Tokens) *AuthService {
	return &AuthService{users: users, blocklist: blocklist, tokens: tokens}
}

// Signup creates an inactive, non-staff user. Taken usernames or emails
// fail with ErrConflict; the unique indexes settle concurrent signups.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		metrics.AuthEvent("signup", "conflict")
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("services: signup: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			metrics.AuthEvent("signup", "conflict")
			return nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("services: signup: %w", err)
	}

	metrics.AuthEvent("signup", "success")
	logger.WithCtx(ctx).Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: user with email %s already exists", ErrConflict, email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("services: signup: %w", err)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: user with username %s already exists", ErrConflict, username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("services: signup: %w", err)
	}
	return nil
}

// Login issues an access/refresh pair. An unknown email and a wrong password
// fail identically with ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		metrics.AuthEvent("login", "failure")
		return nil, fmt.Errorf("%w: invalid email or password", ErrAuthenticationFailed)
	case err != nil:
		return nil, fmt.Errorf("services: login: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		metrics.AuthEvent("login", "failure")
		logger.WithCtx(ctx).Warn("login failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, fmt.Errorf("%w: invalid email or password", ErrAuthenticationFailed)
	}

	access, err := s.tokens.IssueAccess(user.Username)
	if err != nil {
		return nil, fmt.Errorf("services: login: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, fmt.Errorf("services: login: %w", err)
	}

	metrics.AuthEvent("login", "success")
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token for the refresh token's identity. The
// refresh token itself stays valid.
func (s *AuthService) Refresh(ctx context.Context, claims *auth.Claims) (string, error) {
	if _, err := s.users.FindByUsername(ctx, claims.Identity()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.AuthEvent("refresh", "failure")
			return "", fmt.Errorf("%w: unknown identity", ErrAuthenticationFailed)
		}
		return "", fmt.Errorf("services: refresh: %w", err)
	}

	access, err := s.tokens.IssueAccess(claims.Identity())
	if err != nil {
		return "", fmt.Errorf("services: refresh: %w", err)
	}

	metrics.AuthEvent("refresh", "success")
	return access, nil
}

// Logout records the token's jti in the revocation registry and returns the
// revoked token type. Logging out twice with the same token is harmless.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) (auth.TokenType, error) {
	if err := s.blocklist.Revoke(ctx, claims.JTI(), string(claims.Type), claims.Expiry()); err != nil {
		return "", fmt.Errorf("services: logout: %w", err)
	}

	metrics.AuthEvent("logout", "success")
	metrics.TokenRevoked(string(claims.Type))
	logger.WithCtx(ctx).Info("token revoked", "jti", claims.JTI(), "type", claims.Type)
	return claims.Type, nil
}
