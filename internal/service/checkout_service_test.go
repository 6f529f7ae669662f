package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"unimarket/internal/domain"
	"unimarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutComputesTotalAndClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2) // 2 x 10
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, f.buyer.ID, f.p2.ID, 1) // 1 x 5
	require.NoError(t, err)

	order, err := f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, f.buyer.ID, order.UserID)
	require.Len(t, order.Items, 2)
	assert.False(t, order.OrderDate.IsZero())

	// the cart is emptied immediately after the commit
	cart, err := f.cartSvc.GetCart(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutUsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 3)
	require.NoError(t, err)

	// price changes after the item went into the cart
	p := f.p1
	p.Price = 12
	require.NoError(t, f.products.Update(ctx, &p))

	order, err := f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 36.0, order.TotalAmount)
}

func TestCheckoutWithoutCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)

	orders, total, err := f.checkoutSvc.ListByUser(ctx, f.buyer.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.cartSvc.RemoveItem(ctx, f.buyer.ID, f.p1.ID)
	require.NoError(t, err)

	_, err = f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsVanishedProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, f.buyer.ID, f.p2.ID, 1)
	require.NoError(t, err)

	// one referenced product disappears from the catalog
	require.NoError(t, f.products.Delete(ctx, f.p2.ID))

	// the whole checkout is rejected, lines are never silently dropped
	_, err = f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	assert.ErrorIs(t, err, ErrProductGone)

	cart, err := f.cartSvc.GetCart(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

// failingOrders rejects every write, standing in for a store outage.
type failingOrders struct{}

func (failingOrders) Create(ctx context.Context, o *domain.Order) error {
	return errors.New("store unavailable")
}

func (failingOrders) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return nil, repository.ErrNotFound
}

func (failingOrders) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func TestCheckoutPersistenceFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)

	broken := NewCheckoutService(f.carts, f.products, failingOrders{}, f.store)
	_, err = broken.Checkout(ctx, f.buyer.ID)
	require.Error(t, err)

	// no order committed, cart untouched
	orders, total, err := f.checkoutSvc.ListByUser(ctx, f.buyer.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)

	cart, err := f.cartSvc.GetCart(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestConcurrentCheckoutCommitsExactlyOneOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.checkoutSvc.Checkout(ctx, f.buyer.ID)
		}(i)
	}
	wg.Wait()

	// exactly one checkout wins, the other is rejected
	var successes int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			ok := errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrCheckoutConflict)
			assert.True(t, ok, "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	orders, total, err := f.checkoutSvc.ListByUser(ctx, f.buyer.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, 20.0, orders[0].TotalAmount)
}

func TestListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
		require.NoError(t, err)
		_, err = f.checkoutSvc.Checkout(ctx, f.buyer.ID)
		require.NoError(t, err)
	}

	orders, total, err := f.checkoutSvc.ListByUser(ctx, f.buyer.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, orders, 3)
	assert.Greater(t, orders[0].ID, orders[1].ID)
	assert.Greater(t, orders[1].ID, orders[2].ID)
}

func TestGetOrderOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
	require.NoError(t, err)
	order, err := f.checkoutSvc.Checkout(ctx, f.buyer.ID)
	require.NoError(t, err)

	// owner reads fine
	got, err := f.checkoutSvc.GetOrder(ctx, order.ID, f.buyer.ID, false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// another user is rejected unless admin
	_, err = f.checkoutSvc.GetOrder(ctx, order.ID, f.seller.ID, false)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = f.checkoutSvc.GetOrder(ctx, order.ID, f.seller.ID, true)
	assert.NoError(t, err)

	_, err = f.checkoutSvc.GetOrder(ctx, 999, f.buyer.ID, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
