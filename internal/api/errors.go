package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"unimarket/internal/service" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// handleServiceError translates a domain error into a client-facing status
// and payload. Caller-caused conditions map to 4xx; anything unrecognized is
// logged and reported as a 500 without leaking internals.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrProductGone),
		errors.Is(err, service.ErrDuplicateReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotSeller):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCheckoutConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithField("error", err.Error()).Error("Internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
