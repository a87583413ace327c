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

// TagHandler serves owner-scoped tag CRUD.
type TagHandler struct {
	tagService  *service.TagService
	authService *service.AuthService
}

func NewTagHandler(tagService *service.TagService, authService *service.AuthService) *TagHandler {
	return &TagHandler{tagService: tagService, authService: authService}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags", middleware.AuthMiddleware(h.authService))
	{
		tags.GET("", h.ListTags)
		tags.POST("", h.CreateTag)
		tags.GET("/:id", h.GetTag)
		tags.PATCH("/:id", h.UpdateTag)
		tags.PUT("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assignedOnly := c.Query("assigned_only") == "1"
	tags, err := h.tagService.ListTags(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": newTagResponses(tags)})
}

func (h *TagHandler) GetTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}

	tag, err := h.tagService.GetTag(c.Request.Context(), userID, id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) CreateTag(c *gin.Context) {
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

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}

	var req types.UpsertNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, id); err != nil {
		respondTagError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
