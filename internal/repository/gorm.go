package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain"

	"gorm.io/gorm"
)

// GormStore is the shared database handle behind the per-entity repositories.
type GormStore struct {
	base *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{base: db}
}

type gormTxKey struct{}

// db returns the transaction handle from ctx when inside WithTransaction,
// otherwise the base connection.
func (s *GormStore) db(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.base.WithContext(ctx)
}

// WithTransaction wraps fn in a database transaction; repositories called
// with the returned context share the same tx handle.
func (s *GormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, gormTxKey{}, tx))
	})
}

var _ TxManager = (*GormStore)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormUsers implements UserRepository.
type GormUsers struct{ store *GormStore }

func NewGormUsers(store *GormStore) *GormUsers { return &GormUsers{store: store} }

var _ UserRepository = (*GormUsers)(nil)

func (r *GormUsers) Create(ctx context.Context, u *domain.User) error {
	return r.store.db(ctx).Create(u).Error
}

func (r *GormUsers) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.store.db(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.store.db(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormUsers) Update(ctx context.Context, u *domain.User) error {
	res := r.store.db(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUsers) Delete(ctx context.Context, id uint) error {
	res := r.store.db(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormUsers) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.store.db(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := r.store.db(ctx).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GormCategories implements CategoryRepository.
type GormCategories struct{ store *GormStore }

func NewGormCategories(store *GormStore) *GormCategories { return &GormCategories{store: store} }

var _ CategoryRepository = (*GormCategories)(nil)

func (r *GormCategories) Create(ctx context.Context, c *domain.Category) error {
	return r.store.db(ctx).Create(c).Error
}

func (r *GormCategories) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := r.store.db(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormCategories) Update(ctx context.Context, c *domain.Category) error {
	res := r.store.db(ctx).Model(&domain.Category{}).Where("id = ?", c.ID).Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCategories) Delete(ctx context.Context, id uint) error {
	res := r.store.db(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCategories) List(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := r.store.db(ctx).Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// GormProducts implements ProductRepository.
type GormProducts struct{ store *GormStore }

func NewGormProducts(store *GormStore) *GormProducts { return &GormProducts{store: store} }

var _ ProductRepository = (*GormProducts)(nil)

func (r *GormProducts) Create(ctx context.Context, p *domain.Product) error {
	return r.store.db(ctx).Create(p).Error
}

func (r *GormProducts) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.store.db(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *GormProducts) Update(ctx context.Context, p *domain.Product) error {
	res := r.store.db(ctx).Model(&domain.Product{}).Where("id = ?", p.ID).Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProducts) Delete(ctx context.Context, id uint) error {
	res := r.store.db(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProducts) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.db(ctx).Preload("Category").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProducts) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.db(ctx).Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProducts) ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.store.db(ctx).Where("seller_id = ?", sellerID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GormCarts implements CartRepository.
type GormCarts struct{ store *GormStore }

func NewGormCarts(store *GormStore) *GormCarts { return &GormCarts{store: store} }

var _ CartRepository = (*GormCarts)(nil)

func (r *GormCarts) Create(ctx context.Context, c *domain.Cart) error {
	return r.store.db(ctx).Create(c).Error
}

func (r *GormCarts) GetByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	var c domain.Cart
	err := r.store.db(ctx).Preload("Items.Product").Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormCarts) AddItem(ctx context.Context, item *domain.CartItem) error {
	return r.store.db(ctx).Create(item).Error
}

func (r *GormCarts) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	res := r.store.db(ctx).Model(&domain.CartItem{}).
		Where("id = ?", item.ID).
		Update("quantity", item.Quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCarts) RemoveItem(ctx context.Context, cartID, productID uint) error {
	return r.store.db(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{}).Error
}

func (r *GormCarts) GetItem(ctx context.Context, cartID, itemID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.store.db(ctx).Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *GormCarts) ClearItems(ctx context.Context, cartID, version uint) error {
	// Compare-and-swap on the version column guards against a concurrent
	// checkout clearing the same cart twice.
	res := r.store.db(ctx).Model(&domain.Cart{}).
		Where("id = ? AND version = ?", cartID, version).
		Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return r.store.db(ctx).Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
}

// GormOrders implements OrderRepository.
type GormOrders struct{ store *GormStore }

func NewGormOrders(store *GormStore) *GormOrders { return &GormOrders{store: store} }

var _ OrderRepository = (*GormOrders)(nil)

func (r *GormOrders) Create(ctx context.Context, o *domain.Order) error {
	return r.store.db(ctx).Create(o).Error
}

func (r *GormOrders) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var o domain.Order
	if err := r.store.db(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *GormOrders) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error) {
	var total int64
	if err := r.store.db(ctx).Model(&domain.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []domain.Order
	err := r.store.db(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GormReviews implements ReviewRepository.
type GormReviews struct{ store *GormStore }

func NewGormReviews(store *GormStore) *GormReviews { return &GormReviews{store: store} }

var _ ReviewRepository = (*GormReviews)(nil)

func (r *GormReviews) Create(ctx context.Context, rv *domain.Review) error {
	return r.store.db(ctx).Create(rv).Error
}

func (r *GormReviews) GetByID(ctx context.Context, id uint) (*domain.Review, error) {
	var rv domain.Review
	if err := r.store.db(ctx).First(&rv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

func (r *GormReviews) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*domain.Review, error) {
	var rv domain.Review
	err := r.store.db(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&rv).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

func (r *GormReviews) Update(ctx context.Context, rv *domain.Review) error {
	res := r.store.db(ctx).Model(&domain.Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]any{"rating": rv.Rating, "comment": rv.Comment})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormReviews) Delete(ctx context.Context, id uint) error {
	res := r.store.db(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormReviews) ListByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.store.db(ctx).Preload("User").Preload("Product").
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviews) ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.store.db(ctx).Preload("User").Preload("Product").
		Where("product_id = ?", productID).
		Order("date desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
