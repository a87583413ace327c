package service

import "errors"

var (
	// ErrNotFound covers both truly missing rows and rows owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNameTaken          = errors.New("name already exists for this user")
	ErrInvalidImage       = errors.New("uploaded file is not a valid image")
)
