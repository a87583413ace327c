package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mworley/recipebox/backend/internal/models"
	"github.com/mworley/recipebox/backend/internal/types"
)

// RecipeService handles owner-scoped recipe operations, including the
// nested tag/ingredient reconciliation performed on writes.
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// ListRecipes returns the user's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tags").
		Preload("Ingredients").
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns one of the user's recipes. Rows owned by other users
// are reported as ErrNotFound.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Tags").
		Preload("Ingredients").
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe owned by the user and resolves any nested
// tag/ingredient names.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if err := s.replaceTags(tx, &recipe, userID, inputNames(req.Tags)); err != nil {
			return err
		}
		return s.replaceIngredients(tx, &recipe, userID, inputNames(req.Ingredients))
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, userID, recipe.ID)
}

// UpdateRecipe applies the non-nil fields of req to one of the user's
// recipes. Nil tag/ingredient lists leave the association sets untouched;
// empty lists clear them.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req types.UpdateRecipeRequest) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.TimeMinutes != nil {
			updates["time_minutes"] = *req.TimeMinutes
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Link != nil {
			updates["link"] = *req.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Tags != nil {
			names := inputNames(*req.Tags)
			if err := s.replaceTags(tx, &recipe, userID, names); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			names := inputNames(*req.Ingredients)
			if err := s.replaceIngredients(tx, &recipe, userID, names); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, userID, id)
}

// DeleteRecipe removes one of the user's recipes along with its association
// rows and stored image.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
	if err != nil {
		return err
	}

	if recipe.ImageKey != "" {
		if err := s.images.Delete(ctx, recipe.ImageKey); err != nil {
			log.Printf("Failed to remove image %s for deleted recipe %s: %v", recipe.ImageKey, recipe.ID, err)
		}
	}
	return nil
}

// AttachImage validates and stores an uploaded image for one of the user's
// recipes, replacing any previous image. On any single successful path the
// recipe ends up with exactly one stored object.
func (s *RecipeService) AttachImage(ctx context.Context, userID, id uuid.UUID, data []byte) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	format, err := DetectImageFormat(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipe-images/%s/%s.%s", recipe.ID, uuid.New(), format)
	url, err := s.images.Save(ctx, key, data, "image/"+format)
	if err != nil {
		return nil, err
	}

	oldKey := recipe.ImageKey
	updates := map[string]interface{}{"image_key": key, "image_url": url}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
		// Remove the new object so the old and new files never coexist
		if derr := s.images.Delete(ctx, key); derr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", key, derr)
		}
		return nil, err
	}

	if oldKey != "" {
		if err := s.images.Delete(ctx, oldKey); err != nil {
			log.Printf("Failed to remove replaced image %s: %v", oldKey, err)
		}
	}

	return s.GetRecipe(ctx, userID, id)
}

// replaceTags resolves names to owned tags and replaces the recipe's tag set
// wholesale. An empty name list clears the set.
func (s *RecipeService) replaceTags(tx *gorm.DB, recipe *models.Recipe, userID uuid.UUID, names []string) error {
	if len(names) == 0 {
		return tx.Model(recipe).Association("Tags").Clear()
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag := models.Tag{UserID: userID, Name: name}
		// Insert-or-ignore through the (user_id, name) unique index keeps
		// concurrent identical requests from creating duplicate rows.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).Create(&tag).Error; err != nil {
			return err
		}
		// Re-fetch into a fresh value: on conflict the insert was skipped
		// and tag still carries the unused generated ID
		var resolved models.Tag
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&resolved).Error; err != nil {
			return err
		}
		tags = append(tags, resolved)
	}

	return tx.Model(recipe).Association("Tags").Replace(&tags)
}

// replaceIngredients mirrors replaceTags for the ingredient vocabulary.
func (s *RecipeService) replaceIngredients(tx *gorm.DB, recipe *models.Recipe, userID uuid.UUID, names []string) error {
	if len(names) == 0 {
		return tx.Model(recipe).Association("Ingredients").Clear()
	}

	ingredients := make([]models.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient := models.Ingredient{UserID: userID, Name: name}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).Create(&ingredient).Error; err != nil {
			return err
		}
		var resolved models.Ingredient
		if err := tx.Where("user_id = ? AND name = ?", userID, name).First(&resolved).Error; err != nil {
			return err
		}
		ingredients = append(ingredients, resolved)
	}

	return tx.Model(recipe).Association("Ingredients").Replace(&ingredients)
}

// inputNames extracts names from nested inputs, collapsing duplicates while
// preserving first-seen order.
func inputNames(inputs []types.NameInput) []string {
	seen := make(map[string]struct{}, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.Name]; dup {
			continue
		}
		seen[in.Name] = struct{}{}
		names = append(names, in.Name)
	}
	return names
}
