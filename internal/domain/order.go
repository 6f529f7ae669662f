package domain

import "time"

// OrderItem Model: snapshot of a cart line at checkout time
type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`             // Primary key
	OrderID   uint `gorm:"index;not null" json:"order_id"`   // Foreign key to the containing Order
	ProductID uint `gorm:"index;not null" json:"product_id"` // Foreign key to Product
	Quantity  int  `gorm:"not null" json:"quantity"`         // Quantity captured at checkout
}

// Order Model: immutable once created
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`            // Primary key
	UserID      uint        `gorm:"index;not null" json:"user_id"`   // Foreign key to the owning user
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // Snapshot of cart items
	TotalAmount float64     `gorm:"not null" json:"total_amount"`    // Computed server-side at checkout
	OrderDate   time.Time   `json:"order_date"`                      // Timestamp of checkout
}
