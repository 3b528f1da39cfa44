package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
)

func newAuth(users *mockUsers, blocklist *mockBlocklist) (*services.AuthService, *auth.TokenService) {
	tokens := auth.NewTokenService("test-secret", time.Minute, time.Hour)
	return services.NewAuthService(users, blocklist, tokens), tokens
}

func TestSignupCreatesInactiveUser(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{}
	users.On("FindByEmail", ctx, "a@x.com").Return(nil, repositories.ErrNotFound)
	users.On("FindByUsername", ctx, "a").Return(nil, repositories.ErrNotFound)
	users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	svc, _ := newAuth(users, &mockBlocklist{})
	user, err := svc.Signup(ctx, services.SignupInput{Username: "a", Email: "A@x.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "pw", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "pw"))
	users.AssertExpectations(t)
}

func TestSignupConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("email taken", func(t *testing.T) {
		users := &mockUsers{}
		users.On("FindByEmail", ctx, "a@x.com").Return(&models.User{ID: 1}, nil)

		svc, _ := newAuth(users, &mockBlocklist{})
		_, err := svc.Signup(ctx, services.SignupInput{Username: "a", Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, services.ErrConflict)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("username taken", func(t *testing.T) {
		users := &mockUsers{}
		users.On("FindByEmail", ctx, "b@x.com").Return(nil, repositories.ErrNotFound)
		users.On("FindByUsername", ctx, "a").Return(&models.User{ID: 1}, nil)

		svc, _ := newAuth(users, &mockBlocklist{})
		_, err := svc.Signup(ctx, services.SignupInput{Username: "a", Email: "b@x.com", Password: "pw"})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		users := &mockUsers{}
		users.On("FindByEmail", ctx, "a@x.com").Return(nil, repositories.ErrNotFound)
		users.On("FindByUsername", ctx, "a").Return(nil, repositories.ErrNotFound)
		users.On("Create", ctx, mock.Anything).Return(repositories.ErrDuplicateKey)

		svc, _ := newAuth(users, &mockBlocklist{})
		_, err := svc.Signup(ctx, services.SignupInput{Username: "a", Email: "a@x.com", Password: "pw"})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("store failure is not a conflict", func(t *testing.T) {
		users := &mockUsers{}
		users.On("FindByEmail", ctx, "a@x.com").Return(nil, errors.New("db down"))

		svc, _ := newAuth(users, &mockBlocklist{})
		_, err := svc.Signup(ctx, services.SignupInput{Username: "a", Email: "a@x.com", Password: "pw"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)

	users := &mockUsers{}
	users.On("FindByEmail", ctx, "a@x.com").Return(&models.User{ID: 1, Username: "a", PasswordHash: hash}, nil)
	users.On("FindByEmail", ctx, "nobody@x.com").Return(nil, repositories.ErrNotFound)

	svc, tokens := newAuth(users, &mockBlocklist{})

	pair, err := svc.Login(ctx, services.LoginInput{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	access, err := tokens.Validate(pair.AccessToken, auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a", access.Identity())
	refresh, err := tokens.Validate(pair.RefreshToken, auth.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, access.JTI(), refresh.JTI())

	_, wrongPw := svc.Login(ctx, services.LoginInput{Email: "a@x.com", Password: "nope"})
	_, unknown := svc.Login(ctx, services.LoginInput{Email: "nobody@x.com", Password: "pw"})
	assert.ErrorIs(t, wrongPw, services.ErrAuthenticationFailed)
	assert.ErrorIs(t, unknown, services.ErrAuthenticationFailed)
	assert.Equal(t, wrongPw.Error(), unknown.Error(), "no hint about which field was wrong")
}

func TestRefreshKeepsRefreshTokenValid(t *testing.T) {
	ctx := context.Background()
	users := &mockUsers{}
	users.On("FindByUsername", ctx, "a").Return(&models.User{ID: 1, Username: "a"}, nil)
	users.On("FindByUsername", ctx, "ghost").Return(nil, repositories.ErrNotFound)

	svc, tokens := newAuth(users, &mockBlocklist{})

	raw, err := tokens.IssueRefresh("a")
	require.NoError(t, err)
	claims, err := tokens.Validate(raw, auth.RefreshToken)
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, claims)
	require.NoError(t, err)
	got, err := tokens.Validate(access, auth.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Identity())

	_, err = tokens.Validate(raw, auth.RefreshToken)
	assert.NoError(t, err)

	ghost, err := tokens.IssueRefresh("ghost")
	require.NoError(t, err)
	ghostClaims, err := tokens.Validate(ghost, auth.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, ghostClaims)
	assert.ErrorIs(t, err, services.ErrAuthenticationFailed)
}

func TestLogoutRevokesJTI(t *testing.T) {
	ctx := context.Background()
	blocklist := &mockBlocklist{}
	svc, tokens := newAuth(&mockUsers{}, blocklist)

	raw, err := tokens.IssueRefresh("a")
	require.NoError(t, err)
	claims, err := tokens.Validate(raw, "")
	require.NoError(t, err)

	blocklist.On("Revoke", ctx, claims.JTI(), "refresh", claims.Expiry()).Return(nil)

	typ, err := svc.Logout(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, auth.RefreshToken, typ)
	blocklist.AssertExpectations(t)

	blocklist = &mockBlocklist{}
	blocklist.On("Revoke", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))
	svc, _ = newAuth(&mockUsers{}, blocklist)
	_, err = svc.Logout(ctx, claims)
	assert.Error(t, err)
}
