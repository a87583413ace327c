package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe belongs to exactly one user. Tags and ingredients are attached
// through join tables and always share the recipe's owner.
type Recipe struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null;check:time_minutes >= 0" json:"time_minutes"`
	Price       float64      `gorm:"type:decimal(8,2);not null;check:price >= 0" json:"price"`
	Description string       `gorm:"type:text" json:"description"`
	Link        string       `gorm:"size:255" json:"link"`
	ImageKey    string       `gorm:"size:255" json:"-"`
	ImageURL    string       `gorm:"size:255" json:"image_url"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Tag is a per-user label. The (user_id, name) unique index backs the
// atomic insert-or-retrieve used during nested recipe writes.
type Tag struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Ingredient is per-user vocabulary, shaped exactly like Tag.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredients_user_name" json:"user_id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
