package service

import (
	"context"
	"testing"

	"unimarket/internal/domain"
	"unimarket/internal/repository"

	"github.com/stretchr/testify/require"
)

// fixture wires all services over an in-memory store with a seeded seller,
// buyer, category and two products.
type fixture struct {
	store    *repository.MemoryStore
	users    *repository.MemoryUsers
	products *repository.MemoryProducts
	carts    *repository.MemoryCarts
	orders   *repository.MemoryOrders
	reviews  *repository.MemoryReviews

	cartSvc     *CartService
	checkoutSvc *CheckoutService
	reviewSvc   *ReviewService
	productSvc  *ProductService
	categorySvc *CategoryService

	seller   domain.User
	buyer    domain.User
	category domain.Category
	p1       domain.Product // price 10
	p2       domain.Product // price 5
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore()
	f := &fixture{
		store:    store,
		users:    repository.NewMemoryUsers(store),
		products: repository.NewMemoryProducts(store),
		carts:    repository.NewMemoryCarts(store),
		orders:   repository.NewMemoryOrders(store),
		reviews:  repository.NewMemoryReviews(store),
	}
	categories := repository.NewMemoryCategories(store)

	f.cartSvc = NewCartService(f.carts, f.products, store)
	f.checkoutSvc = NewCheckoutService(f.carts, f.products, f.orders, store)
	f.reviewSvc = NewReviewService(f.reviews, f.users, f.products)
	f.productSvc = NewProductService(f.products, f.users, categories)
	f.categorySvc = NewCategoryService(categories)

	f.seller = domain.User{Name: "Sam Seller", Email: "sam@example.com", Password: "x", Role: domain.RoleSeller}
	require.NoError(t, f.users.Create(ctx, &f.seller))
	f.buyer = domain.User{Name: "Bea Buyer", Email: "bea@example.com", Password: "x", Role: domain.RoleBuyer}
	require.NoError(t, f.users.Create(ctx, &f.buyer))

	f.category = domain.Category{Name: "Books"}
	require.NoError(t, categories.Create(ctx, &f.category))

	f.p1 = domain.Product{Name: "Textbook", Description: "Intro to Go", Price: 10, Image: "p1.jpg", SellerID: f.seller.ID, CategoryID: f.category.ID}
	require.NoError(t, f.products.Create(ctx, &f.p1))
	f.p2 = domain.Product{Name: "Notebook", Description: "200 pages", Price: 5, Image: "p2.jpg", SellerID: f.seller.ID, CategoryID: f.category.ID}
	require.NoError(t, f.products.Create(ctx, &f.p2))

	return f
}
