package types

// RegisterRequest is the body for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
}

// TokenRequest is the body for exchanging credentials for a bearer token.
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest carries optional fields for updating the authenticated
// user. Nil means "leave unchanged".
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// NameInput is a nested create-or-reuse reference carried inside recipe
// payloads. Only the name matters; resolution is scoped to the requester.
type NameInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateRecipeRequest is the body for creating a recipe.
type CreateRecipeRequest struct {
	Title       string      `json:"title" binding:"required"`
	TimeMinutes int         `json:"time_minutes" binding:"min=0"`
	Price       float64     `json:"price" binding:"min=0"`
	Description string      `json:"description"`
	Link        string      `json:"link"`
	Tags        []NameInput `json:"tags"`
	Ingredients []NameInput `json:"ingredients"`
}

// UpdateRecipeRequest is the body for partial or full recipe updates.
// Nil scalar fields are left unchanged. Nil tag/ingredient lists leave the
// association sets untouched; empty lists clear them.
type UpdateRecipeRequest struct {
	Title       *string      `json:"title"`
	TimeMinutes *int         `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *float64     `json:"price" binding:"omitempty,min=0"`
	Description *string      `json:"description"`
	Link        *string      `json:"link"`
	Tags        *[]NameInput `json:"tags"`
	Ingredients *[]NameInput `json:"ingredients"`
}

// UpsertNameRequest is the body for creating or renaming a tag/ingredient.
type UpsertNameRequest struct {
	Name string `json:"name" binding:"required"`
}
