package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mworley/recipebox/backend/internal/middleware"
	"github.com/mworley/recipebox/backend/internal/service"
	"github.com/mworley/recipebox/backend/internal/types"
)

// IngredientHandler serves owner-scoped ingredient CRUD.
type IngredientHandler struct {
	ingredientService *service.IngredientService
	authService       *service.AuthService
}

func NewIngredientHandler(ingredientService *service.IngredientService, authService *service.AuthService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService, authService: authService}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients", middleware.AuthMiddleware(h.authService))
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.PATCH("/:id", h.UpdateIngredient)
		ingredients.PUT("/:id", h.UpdateIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": newIngredientResponses(ingredients)})
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), userID, id)
	if err != nil {
		respondIngredientError(c, err)
		return
	}

	c.JSON(http.StatusOK, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpsertNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondIngredientError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	var req types.UpsertNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		respondIngredientError(c, err)
		return
	}

	c.JSON(http.StatusOK, IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	if err := h.ingredientService.DeleteIngredient(c.Request.Context(), userID, id); err != nil {
		respondIngredientError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondIngredientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
