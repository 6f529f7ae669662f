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

const productListCacheKey = "products:all" // Cache key for the full catalog

// Request struct for product create/update
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`        // Product name
	Description string  `json:"description" binding:"required"` // Product description
	Price       float64 `json:"price" binding:"required,gt=0"`  // Unit price
	Image       string  `json:"image"`                          // Image URL
	CategoryID  uint    `json:"category" binding:"required"`    // Category reference
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
	}
}

// CreateProductHandler registers a product owned by the calling seller
func CreateProductHandler(products *service.ProductService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product, err := products.Create(c.Request.Context(), callerID, req.input())
		if err != nil {
			handleServiceError(c, err)
			return
		}
		// Invalidate the catalog cache after the write
		_ = cache.Delete(c.Request.Context(), productListCacheKey)
		c.JSON(http.StatusCreated, product)
	}
}

// ListProductsHandler returns the whole catalog, served from cache when warm
func ListProductsHandler(products *service.ProductService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cached []domain.Product
		found, err := cache.Get(c.Request.Context(), productListCacheKey, &cached)
		if err == nil && found {
			// Return cached catalog
			c.JSON(http.StatusOK, gin.H{"products": cached, "cached": true})
			return
		}
		list, err := products.List(c.Request.Context())
		if err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Set(c.Request.Context(), productListCacheKey, list) // Cache the catalog
		c.JSON(http.StatusOK, gin.H{"products": list, "cached": false})
	}
}

// GetProductHandler returns one product by id
func GetProductHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		product, err := products.Get(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// ListProductsByCategoryHandler returns the catalog filtered by category
func ListProductsByCategoryHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		list, err := products.ListByCategory(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	}
}

// ListSellerProductsHandler returns the catalog filtered by seller
func ListSellerProductsHandler(products *service.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller id"})
			return
		}
		list, err := products.ListBySeller(c.Request.Context(), uint(id))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	}
}

// UpdateProductHandler modifies a product, owning seller only
func UpdateProductHandler(products *service.ProductService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product, err := products.Update(c.Request.Context(), uint(id), callerID, req.input())
		if err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Delete(c.Request.Context(), productListCacheKey) // Invalidate catalog cache
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler removes a product, owning seller only
func DeleteProductHandler(products *service.ProductService, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		if err := products.Delete(c.Request.Context(), uint(id), callerID); err != nil {
			handleServiceError(c, err)
			return
		}
		_ = cache.Delete(c.Request.Context(), productListCacheKey) // Invalidate catalog cache
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
