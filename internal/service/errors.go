package service

import "errors"

// Domain errors surfaced by the services. The HTTP layer maps these onto
// status codes; anything not in this list is treated as an internal failure.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrItemNotFound     = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrReviewNotFound   = errors.New("review not found")

	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductGone      = errors.New("cart references a product that no longer exists")
	ErrCheckoutConflict = errors.New("cart changed during checkout")
	ErrDuplicateReview  = errors.New("user already reviewed this product")
	ErrNotOwner         = errors.New("caller does not own this resource")
	ErrNotSeller        = errors.New("only sellers can manage products")
)
