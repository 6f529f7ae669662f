package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := ProductInput{Name: "Lamp", Description: "Desk lamp", Price: 19.5, Image: "lamp.jpg", CategoryID: f.category.ID}
	p, err := f.productSvc.Create(ctx, f.seller.ID, in)
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, f.seller.ID, p.SellerID)
}

func TestCreateProductRequiresSellerRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := ProductInput{Name: "Lamp", Description: "Desk lamp", Price: 19.5, CategoryID: f.category.ID}
	_, err := f.productSvc.Create(ctx, f.buyer.ID, in)
	assert.ErrorIs(t, err, ErrNotSeller)

	_, err = f.productSvc.Create(ctx, 999, in)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.productSvc.Create(ctx, f.seller.ID, ProductInput{Name: "", Description: "d", Price: 1, CategoryID: f.category.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.productSvc.Create(ctx, f.seller.ID, ProductInput{Name: "n", Description: "d", Price: 0, CategoryID: f.category.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.productSvc.Create(ctx, f.seller.ID, ProductInput{Name: "n", Description: "d", Price: 1, CategoryID: 999})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := ProductInput{Name: "Textbook 2e", Description: "Second edition", Price: 15, Image: "p1.jpg", CategoryID: f.category.ID}

	// a non-owner cannot touch the product
	_, err := f.productSvc.Update(ctx, f.p1.ID, f.buyer.ID, in)
	assert.ErrorIs(t, err, ErrNotOwner)

	p, err := f.productSvc.Update(ctx, f.p1.ID, f.seller.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Textbook 2e", p.Name)
	assert.Equal(t, 15.0, p.Price)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.productSvc.Delete(ctx, f.p1.ID, f.buyer.ID), ErrNotOwner)
	require.NoError(t, f.productSvc.Delete(ctx, f.p1.ID, f.seller.ID))
	assert.ErrorIs(t, f.productSvc.Delete(ctx, f.p1.ID, f.seller.ID), ErrProductNotFound)
}

func TestListByCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	other, err := f.categorySvc.Create(ctx, "Electronics")
	require.NoError(t, err)
	_, err = f.productSvc.Create(ctx, f.seller.ID, ProductInput{Name: "Charger", Description: "USB-C", Price: 9, CategoryID: other.ID})
	require.NoError(t, err)

	books, err := f.productSvc.ListByCategory(ctx, f.category.ID)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	electronics, err := f.productSvc.ListByCategory(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, electronics, 1)

	_, err = f.productSvc.ListByCategory(ctx, 999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListBySeller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// both seeded products belong to the seller, none to the buyer
	mine, err := f.productSvc.ListBySeller(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := f.productSvc.ListBySeller(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.productSvc.ListBySeller(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
