package service

import (
	"context"
	"errors"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
)

// CartService maintains the single in-progress cart per user and its line
// items. Additions merge by product: a cart never holds two lines for the
// same product.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       repository.TxManager
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, tx repository.TxManager) *CartService {
	return &CartService{carts: carts, products: products, tx: tx}
}

// AddItem adds quantity of a product to the user's cart, creating the cart
// on first use. An existing line for the same product is incremented.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			cart = &domain.Cart{UserID: userID}
			if err := s.carts.Create(ctx, cart); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if line := cart.Item(productID); line != nil {
			line.Quantity += quantity
			return s.carts.UpdateItem(ctx, line)
		}
		return s.carts.AddItem(ctx, &domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.carts.GetByUser(ctx, userID)
}

// RemoveItem deletes the line for productID from the user's cart. Removing a
// product that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) (*domain.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	if cart.Item(productID) != nil {
		if err := s.carts.RemoveItem(ctx, cart.ID, productID); err != nil {
			return nil, err
		}
	}
	return s.carts.GetByUser(ctx, userID)
}

// UpdateItemQuantity replaces the quantity of a specific line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID uint, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	item, err := s.carts.GetItem(ctx, cart.ID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.carts.UpdateItem(ctx, item); err != nil {
		// the line can disappear between the read and the write
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.carts.GetByUser(ctx, userID)
}

// GetCart returns the user's cart with product details resolved. A user who
// never added anything gets an empty cart, not an error.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}
