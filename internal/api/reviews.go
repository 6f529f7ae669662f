package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"unimarket/internal/domain"     // Importing domain models
	"unimarket/internal/middleware" // Caller identity helpers
	"unimarket/internal/service"    // Business logic
	"unimarket/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// productReviewsCacheKey builds the cache key for a product's review list
func productReviewsCacheKey(productID uint) string {
	return "reviews:product:" + strconv.Itoa(int(productID))
}

// Request struct for creating a review
type CreateReviewRequest struct {
	ProductID uint   `json:"product" binding:"required"` // Product reference
	Rating    int    `json:"rating" binding:"required"`  // Rating 1-5
	Comment   string `json:"comment" binding:"required"` // Review text
}

// Request struct for updating a review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`  // Rating 1-5
	Comment string `json:"comment" binding:"required"` // Review text
}

// CreateReviewHandler posts a review, one per (user, product) pair
func CreateReviewHandler(reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		review, err := reviews.Create(c.Request.Context(), userID, req.ProductID, req.Rating, req.Comment)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		// Invalidate the product's review cache after the write
		_ = cache.Delete(c.Request.Context(), productReviewsCacheKey(req.ProductID))
		c.JSON(http.StatusCreated, review)
	}
}

// ListProductReviewsHandler returns a product's reviews, cached when warm
func ListProductReviewsHandler(reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		cacheKey := productReviewsCacheKey(uint(id))
		var cached []domain.Review
		found, err := cache.Get(c.Request.Context(), cacheKey, &cached)
		if err == nil && found {
			// Return cached reviews
			c.JSON(http.StatusOK, gin.H{"reviews": cached, "cached": true})
			return
		}
		list, err := reviews.ListByProduct(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Set(c.Request.Context(), cacheKey, list) // Cache the review list
		c.JSON(http.StatusOK, gin.H{"reviews": list, "cached": false})
	}
}

// ListUserReviewsHandler returns all reviews written by one user
func ListUserReviewsHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		list, err := reviews.ListByUser(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": list})
	}
}

// UpdateReviewHandler edits the caller's review
func UpdateReviewHandler(reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}
		var req UpdateReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		review, err := reviews.Update(c.Request.Context(), uint(id), userID, req.Rating, req.Comment)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Delete(c.Request.Context(), productReviewsCacheKey(review.ProductID)) // Invalidate cache
		c.JSON(http.StatusOK, review)
	}
}

// DeleteReviewHandler removes the caller's review
func DeleteReviewHandler(reviews *service.ReviewService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}
		// Look the review up first so the product cache key survives the delete
		review, err := reviews.Get(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		if err := reviews.Delete(c.Request.Context(), uint(id), userID); err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Delete(c.Request.Context(), productReviewsCacheKey(review.ProductID)) // Invalidate cache
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
