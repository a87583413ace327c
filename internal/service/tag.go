package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/internal/models"
)

// TagService handles owner-scoped tag operations.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// ListTags returns the user's tags in reverse alphabetical order. With
// assignedOnly set, only tags attached to at least one of the user's
// recipes are returned, each at most once.
func (s *TagService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).
		Where("tags.user_id = ?", userID).
		Order("tags.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	var tags []models.Tag
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag returns one of the user's tags.
func (s *TagService) GetTag(ctx context.Context, userID, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag creates a tag owned by the user.
func (s *TagService) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	tag := models.Tag{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &tag, nil
}

// UpdateTag renames one of the user's tags.
func (s *TagService) UpdateTag(ctx context.Context, userID, id uuid.UUID, name string) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(tag).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes one of the user's tags and its recipe associations.
func (s *TagService) DeleteTag(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.GetTag(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", tag.ID).Error
	})
}
