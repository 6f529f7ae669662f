package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a conditional write loses a concurrent race.
var ErrConflict = errors.New("conflict")

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Category, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error)
}

// CartRepository persists carts and their line items. Reads resolve each
// line's product reference.
type CartRepository interface {
	Create(ctx context.Context, c *domain.Cart) error
	GetByUser(ctx context.Context, userID uint) (*domain.Cart, error)
	AddItem(ctx context.Context, item *domain.CartItem) error
	UpdateItem(ctx context.Context, item *domain.CartItem) error
	RemoveItem(ctx context.Context, cartID, productID uint) error
	GetItem(ctx context.Context, cartID, itemID uint) (*domain.CartItem, error)
	// ClearItems empties the cart only if its version still matches the
	// caller's snapshot, bumping the version on success. Returns ErrConflict
	// when the cart changed underneath.
	ClearItems(ctx context.Context, cartID, version uint) error
}

// OrderRepository persists orders. Orders are never updated.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error)
}

// ReviewRepository persists reviews. List reads resolve reviewer and product
// display fields.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	GetByID(ctx context.Context, id uint) (*domain.Review, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uint) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]domain.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error)
}

// TxManager runs fn inside one transaction boundary.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
