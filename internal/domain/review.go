package domain

import "time"

// Review Model: one review per (user, product) pair
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                // Primary key
	UserID    uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`       // Foreign key to the reviewing user
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`    // Foreign key to the reviewed product
	Rating    int       `gorm:"not null" json:"rating"`  // Rating, integer 1-5
	Comment   string    `gorm:"not null" json:"comment"` // Review text
	Date      time.Time `json:"date"`                    // Timestamp of the review
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`       // Reviewer, resolved for display
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"` // Product, resolved for display
}
