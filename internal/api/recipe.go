package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mworley/recipebox/backend/internal/middleware"
	"github.com/mworley/recipebox/backend/internal/service"
	"github.com/mworley/recipebox/backend/internal/types"
)

const maxImageSize = 10 << 20 // 10 MiB

// RecipeHandler serves owner-scoped recipe CRUD and image attachment.
type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	writeLimiter  *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		writeLimiter:  writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.PUT("/:id", h.ReplaceRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)

		if h.writeLimiter != nil {
			recipes.POST("", h.writeLimiter.RateLimitMiddleware(), h.CreateRecipe)
			recipes.POST("/:id/image", h.writeLimiter.RateLimitMiddleware(), h.UploadImage)
		} else {
			recipes.POST("", h.CreateRecipe)
			recipes.POST("/:id/image", h.UploadImage)
		}
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for i := range recipes {
		items = append(items, newRecipeListItem(&recipes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"recipes": items})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, newRecipeDetail(recipe))
}

// UpdateRecipe handles PATCH: any subset of fields may be present.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	h.update(c, false)
}

// ReplaceRecipe handles PUT: the scalar fields are all required.
func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	h.update(c, true)
}

func (h *RecipeHandler) update(c *gin.Context, full bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if full && (req.Title == nil || req.TimeMinutes == nil || req.Price == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, time_minutes and price are required"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, req)
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondRecipeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	recipe, err := h.recipeService.AttachImage(c.Request.Context(), userID, id, data)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

func respondRecipeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
