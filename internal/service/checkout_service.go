package service

import (
	"context"
	"errors"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/repository"

	"github.com/sirupsen/logrus"
)

// CheckoutService converts a user's cart into an immutable order. The total
// is always computed from the products' current prices; client-supplied
// amounts are never consulted.
type CheckoutService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

func NewCheckoutService(carts repository.CartRepository, products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager) *CheckoutService {
	return &CheckoutService{carts: carts, products: products, orders: orders, tx: tx}
}

// Checkout snapshots the cart into an order and empties the cart. Both
// writes happen in one transaction; clearing is guarded by a version
// compare-and-swap so two concurrent checkouts commit at most one order.
// Any failure leaves the cart intact and no order behind.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*domain.Order, error) {
	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetByUser(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}
		items := make([]domain.OrderItem, 0, len(cart.Items))
		var total float64
		for _, line := range cart.Items {
			// resolve the current price at checkout time; a vanished
			// product rejects the whole checkout
			product, err := s.products.GetByID(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return ErrProductGone
			}
			if err != nil {
				return err
			}
			total += product.Price * float64(line.Quantity)
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		order := domain.Order{
			UserID:      userID,
			Items:       items,
			TotalAmount: total,
			OrderDate:   time.Now().UTC(),
		}
		if err := s.orders.Create(ctx, &order); err != nil {
			return err
		}
		if err := s.carts.ClearItems(ctx, cart.ID, cart.Version); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrCheckoutConflict
			}
			return err
		}
		created = &order
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Checkout rejected")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"order_id":     created.ID,
		"total_amount": created.TotalAmount,
		"items":        len(created.Items),
	}).Info("Order committed")
	return created, nil
}

// GetOrder returns a single order, restricted to its owner unless the
// caller is an admin.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID, callerID uint, callerIsAdmin bool) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID && !callerIsAdmin {
		return nil, ErrNotOwner
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *CheckoutService) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error) {
	return s.orders.ListByUser(ctx, userID, offset, limit)
}
