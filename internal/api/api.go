package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mworley/recipebox/backend/internal/middleware"
	"github.com/mworley/recipebox/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipebox API is running",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService *service.AuthService, images service.ImageStore, redisClient *redis.Client) {
	router.GET("/health", HealthCheck)

	// A missing Redis client disables rate limiting rather than the API
	var writeLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
	}

	recipeService := service.NewRecipeService(db, images)
	tagService := service.NewTagService(db)
	ingredientService := service.NewIngredientService(db)

	v1 := router.Group("/api/v1")
	NewUserHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, writeLimiter).RegisterRoutes(v1)
	NewTagHandler(tagService, authService).RegisterRoutes(v1)
	NewIngredientHandler(ingredientService, authService).RegisterRoutes(v1)
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
