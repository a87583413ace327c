package api

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mworley/recipebox/backend/internal/models"
)

// storedImagePath resolves the recipe's current image key to a path on the
// local media dir.
func storedImagePath(t *testing.T, env *testEnv, recipeID string) string {
	t.Helper()
	var recipe models.Recipe
	require.NoError(t, env.db.First(&recipe, "id = ?", recipeID).Error)
	require.NotEmpty(t, recipe.ImageKey)
	return filepath.Join(env.mediaDir, filepath.FromSlash(recipe.ImageKey))
}

func TestUploadImage(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "cook@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", token, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)
	assert.Empty(t, created.ImageURL)

	w = env.doMultipart(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/image",
		token, "image", "photo.png", testPNG(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail RecipeDetail
	decodeJSON(t, w, &detail)
	assert.NotEmpty(t, detail.ImageURL)

	path := storedImagePath(t, env, created.ID.String())
	_, err := os.Stat(path)
	assert.NoError(t, err, "uploaded image should exist on disk")
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "cook@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", token, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)

	uploadPath := "/api/v1/recipes/" + created.ID.String() + "/image"
	w = env.doMultipart(t, http.MethodPost, uploadPath, token, "image", "one.png", testPNG(t))
	require.Equal(t, http.StatusOK, w.Code)
	firstPath := storedImagePath(t, env, created.ID.String())

	w = env.doMultipart(t, http.MethodPost, uploadPath, token, "image", "two.png", testPNG(t))
	require.Equal(t, http.StatusOK, w.Code)
	secondPath := storedImagePath(t, env, created.ID.String())

	require.NotEqual(t, firstPath, secondPath)
	_, err := os.Stat(secondPath)
	assert.NoError(t, err, "new image should exist")
	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "replaced image should be removed")
}

func TestUploadImageRejectsInvalidPayload(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "cook@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", token, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)

	uploadPath := "/api/v1/recipes/" + created.ID.String() + "/image"
	w = env.doMultipart(t, http.MethodPost, uploadPath, token, "image", "one.png", testPNG(t))
	require.Equal(t, http.StatusOK, w.Code)
	existingPath := storedImagePath(t, env, created.ID.String())

	w = env.doMultipart(t, http.MethodPost, uploadPath, token, "image", "notanimage.txt",
		[]byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The prior image is untouched by the failed upload.
	assert.Equal(t, existingPath, storedImagePath(t, env, created.ID.String()))
	_, err := os.Stat(existingPath)
	assert.NoError(t, err)
}

func TestUploadImageMissingFileField(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "cook@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", token, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)

	w = env.doMultipart(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/image",
		token, "wrongfield", "photo.png", testPNG(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageCrossUser(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken := env.createTestUser(t, "owner@example.com", "testpass123")
	intruderToken := env.createTestUser(t, "intruder@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", ownerToken, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)

	w = env.doMultipart(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/image",
		intruderToken, "image", "photo.png", testPNG(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipeRemovesImage(t *testing.T) {
	env := setupTestEnv(t)
	token := env.createTestUser(t, "cook@example.com", "testpass123")

	w := env.doJSON(t, http.MethodPost, "/api/v1/recipes", token, sampleRecipe(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var created RecipeDetail
	decodeJSON(t, w, &created)

	w = env.doMultipart(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/image",
		token, "image", "photo.png", testPNG(t))
	require.Equal(t, http.StatusOK, w.Code)
	path := storedImagePath(t, env, created.ID.String())

	w = env.doJSON(t, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "image should be removed with its recipe")
}
