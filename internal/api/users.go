package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"unimarket/internal/domain"     // Importing domain models
	"unimarket/internal/middleware" // Caller identity helpers
	"unimarket/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// pageParams parses page/page_size query parameters with sane defaults
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size if valid
		}
	}
	return page, pageSize
}

// isAdmin reports whether the given user ID holds the admin role
func isAdmin(db *gorm.DB, userID uint) bool {
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		return false
	}
	return user.Role == domain.RoleAdmin
}

// ListUsersHandler returns all users, paginated (admin only route)
func ListUsersHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pageParams(c)
		// Cache key based on pagination parameters
		cacheKey := "users:page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		var cached struct {
			Users      []domain.User `json:"users"`       // List of users
			Page       int           `json:"page"`        // Current page
			PageSize   int           `json:"page_size"`   // Page size
			Total      int64         `json:"total"`       // Total number of users
			TotalPages int           `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := cache.Get(c.Request.Context(), cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true, // Indicate response is from cache
			})
			return
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User
		if err := db.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"users":       users,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false, // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = cache.Set(c.Request.Context(), cacheKey, respData)
		c.JSON(http.StatusOK, respData)
	}
}

// GetUserHandler returns one user, self or admin only
func GetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		// Only the user themself or an admin may read the record
		if uint(id) != callerID && !isAdmin(db, callerID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		var user domain.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// Request struct for user updates
type UpdateUserRequest struct {
	Name     string `json:"name"`     // New display name, optional
	Email    string `json:"email"`    // New email, optional
	Password string `json:"password"` // New password, optional
}

// UpdateUserHandler mutates a user record, self or admin only
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if uint(id) != callerID && !isAdmin(db, callerID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Apply only the provided fields
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			if !isValidEmail(req.Email) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
				return
			}
			user.Email = req.Email
		}
		if req.Password != "" {
			if !isValidPassword(req.Password) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.Password = string(hash)
		}
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
	}
}

// DeleteUserHandler removes a user record, self or admin only
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if uint(id) != callerID && !isAdmin(db, callerID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		res := db.Delete(&domain.User{}, uint(id))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
