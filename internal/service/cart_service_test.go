package service

import (
	"context"
	"testing"

	"unimarket/internal/domain"
	"unimarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemCreatesCartOnFirstUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cart, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.buyer.ID, cart.UserID)
	assert.Equal(t, f.p1.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	// product details are resolved for display
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Textbook", cart.Items[0].Product.Name)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// repeated adds of the same product accumulate into one line
	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 3)
	require.NoError(t, err)
	cart, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity)
}

func TestAddItemSeparateLinesPerProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 1)
	require.NoError(t, err)
	cart, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p2.ID, 4)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)
	_, err = f.cartSvc.AddItem(ctx, f.buyer.ID, f.p2.ID, 1)
	require.NoError(t, err)

	cart, err := f.cartSvc.RemoveItem(ctx, f.buyer.ID, f.p1.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.p2.ID, cart.Items[0].ProductID)
}

func TestRemoveItemNotInCartIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)

	// removing a product that was never added returns the unchanged cart
	cart, err := f.cartSvc.RemoveItem(ctx, f.buyer.ID, f.p2.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestRemoveItemWithoutCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.cartSvc.RemoveItem(ctx, f.buyer.ID, f.p1.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cart, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// replace, not merge
	cart, err = f.cartSvc.UpdateItemQuantity(ctx, f.buyer.ID, itemID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = f.cartSvc.UpdateItemQuantity(ctx, f.buyer.ID, itemID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = f.cartSvc.UpdateItemQuantity(ctx, f.buyer.ID, 999, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGetCartAbsentIsEmptyNotError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cart, err := f.cartSvc.GetCart(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, f.buyer.ID, cart.UserID)
}

// vanishingItemCarts drops the line between the read and the write.
type vanishingItemCarts struct {
	repository.CartRepository
}

func (vanishingItemCarts) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	return repository.ErrNotFound
}

func TestUpdateItemQuantityLineDeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cart, err := f.cartSvc.AddItem(ctx, f.buyer.ID, f.p1.ID, 2)
	require.NoError(t, err)

	// the write-side miss maps to the same error as the read-side one
	racy := NewCartService(vanishingItemCarts{f.carts}, f.products, f.store)
	_, err = racy.UpdateItemQuantity(ctx, f.buyer.ID, cart.Items[0].ID, 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
