package repository

import (
	"context"
	"sync"

	"unimarket/internal/domain"
)

// MemoryStore is an in-memory implementation of the repositories, used by
// tests. A single RWMutex guards all tables; WithTransaction takes the write
// lock for its whole body and marks the context so nested calls skip their
// own locking.
type MemoryStore struct {
	mu           sync.RWMutex
	nextID       map[string]uint
	usersByID    map[uint]domain.User
	catsByID     map[uint]domain.Category
	productsByID map[uint]domain.Product
	cartsByID    map[uint]domain.Cart
	cartByUser   map[uint]uint
	ordersByID   map[uint]domain.Order
	reviewsByID  map[uint]domain.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:       make(map[string]uint),
		usersByID:    make(map[uint]domain.User),
		catsByID:     make(map[uint]domain.Category),
		productsByID: make(map[uint]domain.Product),
		cartsByID:    make(map[uint]domain.Cart),
		cartByUser:   make(map[uint]uint),
		ordersByID:   make(map[uint]domain.Order),
		reviewsByID:  make(map[uint]domain.Review),
	}
}

type txKey struct{}

func isTx(ctx context.Context) bool {
	b, ok := ctx.Value(txKey{}).(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}

func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}

func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}

func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) next(table string) uint {
	m.nextID[table]++
	return m.nextID[table]
}

// WithTransaction serializes the whole body under the write lock.
func (m *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

var _ TxManager = (*MemoryStore)(nil)

// MemoryUsers implements UserRepository.
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (r *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	u.ID = r.store.next("users")
	if u.Role == "" {
		u.Role = domain.RoleBuyer
	}
	r.store.usersByID[u.ID] = *u
	return nil
}

func (r *MemoryUsers) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	u, ok := r.store.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, u := range r.store.usersByID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) Update(ctx context.Context, u *domain.User) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.usersByID[u.ID]; !ok {
		return ErrNotFound
	}
	r.store.usersByID[u.ID] = *u
	return nil
}

func (r *MemoryUsers) Delete(ctx context.Context, id uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.usersByID[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.usersByID, id)
	return nil
}

func (r *MemoryUsers) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	all := make([]domain.User, 0, len(r.store.usersByID))
	for id := uint(1); id <= r.store.nextID["users"]; id++ {
		if u, ok := r.store.usersByID[id]; ok {
			all = append(all, u)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// MemoryCategories implements CategoryRepository.
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (r *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.ID = r.store.next("categories")
	r.store.catsByID[c.ID] = *c
	return nil
}

func (r *MemoryCategories) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	c, ok := r.store.catsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *MemoryCategories) Update(ctx context.Context, c *domain.Category) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.catsByID[c.ID]; !ok {
		return ErrNotFound
	}
	r.store.catsByID[c.ID] = *c
	return nil
}

func (r *MemoryCategories) Delete(ctx context.Context, id uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.catsByID[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.catsByID, id)
	return nil
}

func (r *MemoryCategories) List(ctx context.Context) ([]domain.Category, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Category, 0, len(r.store.catsByID))
	for id := uint(1); id <= r.store.nextID["categories"]; id++ {
		if c, ok := r.store.catsByID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// MemoryProducts implements ProductRepository.
type MemoryProducts struct{ store *MemoryStore }

func NewMemoryProducts(store *MemoryStore) *MemoryProducts { return &MemoryProducts{store: store} }

var _ ProductRepository = (*MemoryProducts)(nil)

func (r *MemoryProducts) Create(ctx context.Context, p *domain.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	p.ID = r.store.next("products")
	r.store.productsByID[p.ID] = *p
	return nil
}

func (r *MemoryProducts) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	p, ok := r.store.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *MemoryProducts) Update(ctx context.Context, p *domain.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.productsByID[p.ID]; !ok {
		return ErrNotFound
	}
	r.store.productsByID[p.ID] = *p
	return nil
}

func (r *MemoryProducts) Delete(ctx context.Context, id uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.productsByID[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.productsByID, id)
	return nil
}

func (r *MemoryProducts) List(ctx context.Context) ([]domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Product, 0, len(r.store.productsByID))
	for id := uint(1); id <= r.store.nextID["products"]; id++ {
		if p, ok := r.store.productsByID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryProducts) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Product, 0)
	for id := uint(1); id <= r.store.nextID["products"]; id++ {
		if p, ok := r.store.productsByID[id]; ok && p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryProducts) ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Product, 0)
	for id := uint(1); id <= r.store.nextID["products"]; id++ {
		if p, ok := r.store.productsByID[id]; ok && p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MemoryCarts implements CartRepository.
type MemoryCarts struct{ store *MemoryStore }

func NewMemoryCarts(store *MemoryStore) *MemoryCarts { return &MemoryCarts{store: store} }

var _ CartRepository = (*MemoryCarts)(nil)

func (r *MemoryCarts) Create(ctx context.Context, c *domain.Cart) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.ID = r.store.next("carts")
	for i := range c.Items {
		c.Items[i].ID = r.store.next("cart_items")
		c.Items[i].CartID = c.ID
	}
	r.store.cartsByID[c.ID] = cloneCart(*c)
	r.store.cartByUser[c.UserID] = c.ID
	return nil
}

func (r *MemoryCarts) GetByUser(ctx context.Context, userID uint) (*domain.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	cartID, ok := r.store.cartByUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	c := cloneCart(r.store.cartsByID[cartID])
	// resolve product references for display, mirroring a preload
	for i := range c.Items {
		if p, ok := r.store.productsByID[c.Items[i].ProductID]; ok {
			cp := p
			c.Items[i].Product = &cp
		}
	}
	return &c, nil
}

func (r *MemoryCarts) AddItem(ctx context.Context, item *domain.CartItem) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c, ok := r.store.cartsByID[item.CartID]
	if !ok {
		return ErrNotFound
	}
	item.ID = r.store.next("cart_items")
	it := *item
	it.Product = nil
	c.Items = append(c.Items, it)
	r.store.cartsByID[c.ID] = c
	return nil
}

func (r *MemoryCarts) UpdateItem(ctx context.Context, item *domain.CartItem) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	for cartID, c := range r.store.cartsByID {
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i].Quantity = item.Quantity
				r.store.cartsByID[cartID] = c
				return nil
			}
		}
	}
	return ErrNotFound
}

func (r *MemoryCarts) RemoveItem(ctx context.Context, cartID, productID uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c, ok := r.store.cartsByID[cartID]
	if !ok {
		return ErrNotFound
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	r.store.cartsByID[cartID] = c
	return nil
}

func (r *MemoryCarts) GetItem(ctx context.Context, cartID, itemID uint) (*domain.CartItem, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	c, ok := r.store.cartsByID[cartID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			cp := it
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryCarts) ClearItems(ctx context.Context, cartID, version uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c, ok := r.store.cartsByID[cartID]
	if !ok {
		return ErrNotFound
	}
	if c.Version != version {
		return ErrConflict
	}
	c.Version++
	c.Items = nil
	r.store.cartsByID[cartID] = c
	return nil
}

func cloneCart(c domain.Cart) domain.Cart {
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

// MemoryOrders implements OrderRepository.
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (r *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	o.ID = r.store.next("orders")
	for i := range o.Items {
		o.Items[i].ID = r.store.next("order_items")
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	cp.Items = items
	r.store.ordersByID[o.ID] = cp
	return nil
}

func (r *MemoryOrders) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	o, ok := r.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

func (r *MemoryOrders) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Order, int64, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	all := make([]domain.Order, 0)
	// newest first: ids are monotonically increasing
	for id := r.store.nextID["orders"]; id >= 1; id-- {
		if o, ok := r.store.ordersByID[id]; ok && o.UserID == userID {
			all = append(all, o)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Order{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// MemoryReviews implements ReviewRepository.
type MemoryReviews struct{ store *MemoryStore }

func NewMemoryReviews(store *MemoryStore) *MemoryReviews { return &MemoryReviews{store: store} }

var _ ReviewRepository = (*MemoryReviews)(nil)

func (r *MemoryReviews) Create(ctx context.Context, rv *domain.Review) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	rv.ID = r.store.next("reviews")
	cp := *rv
	cp.User = nil
	cp.Product = nil
	r.store.reviewsByID[rv.ID] = cp
	return nil
}

func (r *MemoryReviews) GetByID(ctx context.Context, id uint) (*domain.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	rv, ok := r.store.reviewsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := rv
	return &cp, nil
}

func (r *MemoryReviews) GetByUserAndProduct(ctx context.Context, userID, productID uint) (*domain.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, rv := range r.store.reviewsByID {
		if rv.UserID == userID && rv.ProductID == productID {
			cp := rv
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryReviews) Update(ctx context.Context, rv *domain.Review) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	cur, ok := r.store.reviewsByID[rv.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Rating = rv.Rating
	cur.Comment = rv.Comment
	r.store.reviewsByID[rv.ID] = cur
	return nil
}

func (r *MemoryReviews) Delete(ctx context.Context, id uint) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	if _, ok := r.store.reviewsByID[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.reviewsByID, id)
	return nil
}

func (r *MemoryReviews) ListByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Review, 0)
	for id := uint(1); id <= r.store.nextID["reviews"]; id++ {
		if rv, ok := r.store.reviewsByID[id]; ok && rv.UserID == userID {
			out = append(out, r.resolve(rv))
		}
	}
	return out, nil
}

func (r *MemoryReviews) ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	out := make([]domain.Review, 0)
	for id := uint(1); id <= r.store.nextID["reviews"]; id++ {
		if rv, ok := r.store.reviewsByID[id]; ok && rv.ProductID == productID {
			out = append(out, r.resolve(rv))
		}
	}
	return out, nil
}

// resolve joins reviewer and product display fields, caller holds the lock.
func (r *MemoryReviews) resolve(rv domain.Review) domain.Review {
	if u, ok := r.store.usersByID[rv.UserID]; ok {
		cp := u
		rv.User = &cp
	}
	if p, ok := r.store.productsByID[rv.ProductID]; ok {
		cp := p
		rv.Product = &cp
	}
	return rv
}
