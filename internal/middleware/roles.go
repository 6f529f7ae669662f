package middleware

import (
	"net/http"                  // HTTP status codes
	"unimarket/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// requireRole checks the caller's role from the database on each request
func requireRole(db *gorm.DB, message string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c) // Get userID from context
		if !ok {
			// If not set, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
			return
		}
		// Check the user's role against the allowed set
		for _, role := range roles {
			if user.Role == role {
				c.Next() // Allowed, proceed to the next handler
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
	}
}

// AdminOnlyMiddleware restricts a route group to admins
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, "Admin access required", domain.RoleAdmin)
}

// SellerOnlyMiddleware restricts a route group to sellers (admins included)
func SellerOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, "Seller access required", domain.RoleSeller, domain.RoleAdmin)
}
