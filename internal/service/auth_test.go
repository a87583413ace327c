package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mworley/recipebox/backend/internal/models"
	"github.com/mworley/recipebox/backend/internal/testhelpers"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testhelpers.OpenTestDB(t), "test-secret")
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "testpass123")
	require.NoError(t, err)

	assert.NotEqual(t, "testpass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass123")))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), "", "Alice@EXAMPLE.COM", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, "Alice@example.com", user.Email)
}

func TestRegisterEmptyEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "", "   ", "testpass123")
	assert.ErrorIs(t, err, models.ErrEmptyEmail)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "", "dup@example.com", "testpass123")
	require.NoError(t, err)

	// Normalization makes these the same address.
	_, err = svc.Register(context.Background(), "", "dup@EXAMPLE.com", "otherpass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	created, err := svc.Register(context.Background(), "", "login@example.com", "testpass123")
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "login@EXAMPLE.com", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(context.Background(), "login@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "testpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateSuperuser(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "adminpass")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsStaff)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), "", "token@example.com", "testpass123")
	require.NoError(t, err)

	token, err := svc.GenerateToken(user.ID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret must not validate.
	other := NewAuthService(testhelpers.OpenTestDB(t), "other-secret")
	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
