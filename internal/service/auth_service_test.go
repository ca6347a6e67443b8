package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCreatesUnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	resp, err := svc.Login(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.UserID)

	user, err := users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, resp.UserID, user.ID)
	assert.Equal(t, "alice", user.DisplayName, "display name defaults to the username")
}

func TestLoginReusesExistingUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	first, err := svc.Login(context.Background(), "alice")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID, "same username must map to the same user")
	assert.Len(t, users.users, 1)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	resp, err := svc.Login(context.Background(), "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	users := newFakeUserRepo()
	issuer := &AuthService{userRepo: users, jwtSecret: []byte("other-secret")}
	resp, err := issuer.Login(context.Background(), "alice")
	require.NoError(t, err)

	svc := NewAuthService(users)
	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
