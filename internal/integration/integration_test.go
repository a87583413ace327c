package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mworley/recipebox/backend/internal/models"
	"github.com/mworley/recipebox/backend/internal/service"
	"github.com/mworley/recipebox/backend/internal/testhelpers"
	"github.com/mworley/recipebox/backend/internal/types"
)

// TestPostgresRecipeLifecycle runs the recipe flow against a real PostgreSQL
// to cover behavior the in-memory SQLite tests cannot, in particular the
// ON CONFLICT path used for tag and ingredient resolution.
func TestPostgresRecipeLifecycle(t *testing.T) {
	db := testhelpers.SetupPostgresTestDB(t)
	ctx := context.Background()

	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db, service.NewLocalImageStore(t.TempDir(), "/media"))

	user, err := auth.Register(ctx, "Integration", "integration@example.com", "testpass123")
	require.NoError(t, err)

	recipe, err := recipes.CreateRecipe(ctx, user.ID, types.CreateRecipeRequest{
		Title:       "Shakshuka",
		TimeMinutes: 25,
		Price:       5.50,
		Tags:        []types.NameInput{{Name: "Breakfast"}},
		Ingredients: []types.NameInput{{Name: "Eggs"}, {Name: "Tomatoes"}},
	})
	require.NoError(t, err)
	assert.Len(t, recipe.Tags, 1)
	assert.Len(t, recipe.Ingredients, 2)

	// Concurrent creates naming the same new tag must agree on one row.
	titles := []string{"Menemen", "Huevos rancheros", "Frittata", "Omelette"}
	var wg sync.WaitGroup
	for _, title := range titles {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			_, err := recipes.CreateRecipe(ctx, user.ID, types.CreateRecipeRequest{
				Title:       title,
				TimeMinutes: 15,
				Price:       4.00,
				Tags:        []types.NameInput{{Name: "Eggy"}},
			})
			assert.NoError(t, err)
		}(title)
	}
	wg.Wait()

	var count int64
	db.Model(&models.Tag{}).Where("user_id = ? AND name = ?", user.ID, "Eggy").Count(&count)
	assert.EqualValues(t, 1, count)

	require.NoError(t, recipes.DeleteRecipe(ctx, user.ID, recipe.ID))
	_, err = recipes.GetRecipe(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// TestPostgresEmailUniqueness covers the unique index race translation on a
// real database.
func TestPostgresEmailUniqueness(t *testing.T) {
	db := testhelpers.SetupPostgresTestDB(t)
	ctx := context.Background()
	auth := service.NewAuthService(db, "test-secret")

	_, err := auth.Register(ctx, "", "unique@example.com", "testpass123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "", "unique@EXAMPLE.com", "testpass123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}
