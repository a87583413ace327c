package api

import (
	"github.com/google/uuid"

	"github.com/mworley/recipebox/backend/internal/models"
)

// TagResponse is the nested tag representation.
type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// IngredientResponse is the nested ingredient representation.
type IngredientResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeListItem is the list representation of a recipe. It omits the
// long-form description and image; the detail representation carries both.
type RecipeListItem struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// RecipeDetail is the detail representation of a recipe.
type RecipeDetail struct {
	RecipeListItem
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func newIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, IngredientResponse{ID: i.ID, Name: i.Name})
	}
	return out
}

func newRecipeListItem(r *models.Recipe) RecipeListItem {
	return RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        newTagResponses(r.Tags),
		Ingredients: newIngredientResponses(r.Ingredients),
	}
}

func newRecipeDetail(r *models.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeListItem: newRecipeListItem(r),
		Description:    r.Description,
		ImageURL:       r.ImageURL,
	}
}
