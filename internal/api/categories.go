package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"unimarket/internal/service" // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for category create/update
type CategoryRequest struct {
	Name string `json:"name"` // Category name
}

// CreateCategoryHandler registers a new category (admin route)
func CreateCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category, err := categories.Create(c.Request.Context(), req.Name)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// ListCategoriesHandler returns all categories
func ListCategoriesHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.List(c.Request.Context())
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": list})
	}
}

// GetCategoryHandler returns one category by id
func GetCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		category, err := categories.Get(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// UpdateCategoryHandler renames a category (admin route)
func UpdateCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category, err := categories.Update(c.Request.Context(), uint(id), req.Name)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category (admin route)
func DeleteCategoryHandler(categories *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		if err := categories.Delete(c.Request.Context(), uint(id)); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
