package middlewares

import (
	"net/http"

	"codeclimb/internal/models"
	"codeclimb/internal/repositories"
	"codeclimb/internal/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthMiddleware enforces authentication. It validates the session token
// from the jwt cookie, loads the user and stores it in the request context.
func AuthMiddleware(tokenService *services.TokenService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("jwt")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized - No token provided"})
			c.Abort()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized - Invalid token"})
			c.Abort()
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin gates problem mutation endpoints on the ADMIN role. The role
// is re-read from the store so a stale token cannot keep elevated access.
func RequireAdmin(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}

		stored, err := userRepo.GetUserByID(c.Request.Context(), user.ID)
		if err != nil || stored.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden Access - Admins Only"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
