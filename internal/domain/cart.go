package domain

// CartItem Model
type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`               // Primary key
	CartID    uint     `gorm:"index;not null" json:"cart_id"`      // Foreign key to the containing Cart
	ProductID uint     `gorm:"index;not null" json:"product_id"`   // Foreign key to Product
	Quantity  int      `gorm:"not null" json:"quantity"`           // Quantity, always >= 1
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // Product details, resolved on reads
}

// Cart Model: at most one live cart per user
type Cart struct {
	ID      uint       `gorm:"primaryKey" json:"id"`             // Primary key
	UserID  uint       `gorm:"uniqueIndex;not null" json:"user_id"` // Foreign key to User, one cart per user
	Version uint       `gorm:"not null;default:0" json:"-"`      // Optimistic concurrency token for checkout
	Items   []CartItem `gorm:"foreignKey:CartID" json:"items"`   // Line items, one per distinct product
}

// Item returns the line for the given product, or nil if the cart has none.
func (c *Cart) Item(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
