package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEmptyEmail is returned when a user is created without an email address.
var ErrEmptyEmail = errors.New("email address is required")

// User is an account that owns recipes, tags and ingredients.
type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"size:255" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsStaff      bool           `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool           `gorm:"not null;default:false" json:"is_superuser"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NormalizeEmail lower-cases the domain part of an address while preserving
// the casing of the local part. Addresses without an "@" are returned as-is;
// an empty address is an error.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmptyEmail
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, nil
	}
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}
