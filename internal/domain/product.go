package domain

import "time"

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`        // Primary key
	Name        string    `gorm:"not null" json:"name"`        // Product name
	Description string    `gorm:"not null" json:"description"` // Product description
	Price       float64   `gorm:"not null" json:"price"`       // Unit price, currency-agnostic
	Image       string    `json:"image"`                       // URL of the product image
	SellerID    uint      `gorm:"index;not null" json:"seller_id"`   // Foreign key to the owning seller
	CategoryID  uint      `gorm:"index;not null" json:"category_id"` // Foreign key to Category
	Seller      *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`     // Owning seller, resolved on demand
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // Category, resolved on demand
	CreatedAt   time.Time `json:"created_at"` // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"` // Timestamp of last update
}
