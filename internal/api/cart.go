package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"unimarket/internal/middleware" // Caller identity helpers
	"unimarket/internal/service"    // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for adding a product to the cart
type AddToCartRequest struct {
	ProductID uint `json:"product" binding:"required"`  // Product reference
	Quantity  int  `json:"quantity" binding:"required"` // Quantity to add, must be >= 1
}

// Request struct for replacing a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"` // New quantity, must be >= 1
}

// AddToCartHandler merges a product into the caller's cart
func AddToCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AddToCartRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GetCartHandler returns the caller's cart with product details resolved
func GetCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := carts.GetCart(c.Request.Context(), userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// UpdateCartItemHandler replaces the quantity of one cart line
func UpdateCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}
		var req UpdateQuantityRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		cart, err := carts.UpdateItemQuantity(c.Request.Context(), userID, uint(itemID), req.Quantity)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// RemoveCartItemHandler deletes a product's line from the caller's cart
func RemoveCartItemHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		cart, err := carts.RemoveItem(c.Request.Context(), userID, uint(productID))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
