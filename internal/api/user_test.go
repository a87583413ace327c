package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mworley/recipebox/backend/internal/models"
)

func TestCreateUser(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	decodeJSON(t, w, &resp)
	assert.Equal(t, "alice@example.com", resp["email"])
	assert.NotContains(t, w.Body.String(), "password")

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "testpass123", user.PasswordHash)
}

func TestCreateUserNormalizesEmailDomain(t *testing.T) {
	env := setupTestEnv(t)

	cases := []struct {
		input string
		want  string
	}{
		{"test1@EXAMPLE.com", "test1@example.com"},
		{"Test2@Example.com", "Test2@example.com"},
		{"TEST3@EXAMPLE.COM", "TEST3@example.com"},
		{"test4@example.COM", "test4@example.com"},
	}
	for _, tc := range cases {
		w := env.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]any{
			"email":    tc.input,
			"password": "testpass123",
		})
		require.Equal(t, http.StatusCreated, w.Code, "email %s", tc.input)

		var resp map[string]any
		decodeJSON(t, w, &resp)
		assert.Equal(t, tc.want, resp["email"])
	}
}

func TestCreateUserRejectsMissingEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]any{
		"email":    "",
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]any{
		"email":    "short@example.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.User{}).Where("email = ?", "short@example.com").Count(&count)
	assert.Zero(t, count)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createTestUser(t, "dup@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]any{
		"email":    "dup@example.com",
		"password": "otherpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateToken(t *testing.T) {
	env := setupTestEnv(t)
	env.createTestUser(t, "login@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/users/token", "", map[string]any{
		"email":    "login@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.NotEmpty(t, resp["token"])
}

func TestCreateTokenBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.createTestUser(t, "login@example.com", "testpass123")

	for name, body := range map[string]map[string]any{
		"wrong password": {"email": "login@example.com", "password": "wrongpass"},
		"unknown user":   {"email": "nobody@example.com", "password": "testpass123"},
	} {
		w := env.doJSON(t, http.MethodPost, "/api/v1/users/token", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.NotContains(t, w.Body.String(), "token")
	}
}

func TestMeRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/v1/users/me", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "me@example.com", "testpass123")

	w := env.doJSON(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decodeJSON(t, w, &resp)
	assert.Equal(t, "me@example.com", resp["email"])
}

func TestUpdateMe(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "old@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPatch, "/api/v1/users/me", token, map[string]any{
		"name":     "New Name",
		"password": "newpass456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decodeJSON(t, w, &resp)
	assert.Equal(t, "New Name", resp["name"])
	assert.Equal(t, "old@example.com", resp["email"])

	// The new password works, the old one does not.
	w = env.doJSON(t, http.MethodPost, "/api/v1/users/token", "", map[string]any{
		"email":    "old@example.com",
		"password": "newpass456",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/v1/users/token", "", map[string]any{
		"email":    "old@example.com",
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
