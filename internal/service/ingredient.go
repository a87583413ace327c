package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/internal/models"
)

// IngredientService handles owner-scoped ingredient operations. It mirrors
// TagService; tags and ingredients share behavior but not tables.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns the user's ingredients in reverse alphabetical
// order, optionally restricted to those attached to a recipe.
func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).
		Where("ingredients.user_id = ?", userID).
		Order("ingredients.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient returns one of the user's ingredients.
func (s *IngredientService) GetIngredient(ctx context.Context, userID, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// CreateIngredient creates an ingredient owned by the user.
func (s *IngredientService) CreateIngredient(ctx context.Context, userID uuid.UUID, name string) (*models.Ingredient, error) {
	ingredient := models.Ingredient{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &ingredient, nil
}

// UpdateIngredient renames one of the user's ingredients.
func (s *IngredientService) UpdateIngredient(ctx context.Context, userID, id uuid.UUID, name string) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(ingredient).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return ingredient, nil
}

// DeleteIngredient removes one of the user's ingredients and its recipe
// associations.
func (s *IngredientService) DeleteIngredient(ctx context.Context, userID, id uuid.UUID) error {
	ingredient, err := s.GetIngredient(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ingredient{}, "id = ?", ingredient.ID).Error
	})
}
