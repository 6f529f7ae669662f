package domain

// User roles
const (
	RoleSeller = "seller" // Sellers own and manage products
	RoleBuyer  = "buyer"  // Buyers build carts and place orders
	RoleAdmin  = "admin"  // Admins have cross-user privileges
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`         // Primary key
	Name     string `gorm:"not null" json:"name"`         // Display name
	Email    string `gorm:"unique;not null" json:"email"` // Unique email address
	Password string `gorm:"not null" json:"-"`            // Hashed password, never serialized
	Role     string `gorm:"default:buyer" json:"role"`    // Role: seller, buyer or admin
}
