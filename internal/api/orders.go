package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"unimarket/internal/middleware" // Caller identity helpers
	"unimarket/internal/service"    // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CheckoutHandler converts the caller's cart into an order. The request body
// is deliberately ignored: totals and prices always come from the catalog.
func CheckoutHandler(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		order, err := checkout.Checkout(c.Request.Context(), userID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// ListMyOrdersHandler returns the caller's orders, newest first, paginated
func ListMyOrdersHandler(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize := pageParams(c)
		offset := (page - 1) * pageSize // Calculate offset
		orders, total, err := checkout.ListByUser(c.Request.Context(), userID, offset, pageSize)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		})
	}
}

// GetOrderHandler returns one order, owner or admin only
func GetOrderHandler(checkout *service.CheckoutService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c) // Get caller from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}
		order, err := checkout.GetOrder(c.Request.Context(), uint(id), userID, isAdmin(db, userID))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
