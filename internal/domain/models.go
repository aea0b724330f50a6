package domain

import "database/sql"

// Role values for User.Role.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// Order status values. An order starts in StatusPayment and ends in
// StatusReceived; StatusReceived is only reachable through delivery
// verification.
const (
	StatusPayment  = "payment"
	StatusShipping = "shipping"
	StatusDelivery = "delivery"
	StatusReceived = "received"
)

type User struct {
	ID      string `db:"id"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Hash    string `db:"password_hash"`
	Address string `db:"address"`
	Role    string `db:"role"`
}

type Product struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	Description  string  `db:"description"`
	Features     string  `db:"features"` // newline-delimited
	Images       string  `db:"images"`   // newline-delimited paths
	SellerID     string  `db:"seller_id"`
	Rating       float64 `db:"rating"`
	ReviewsCount int     `db:"reviews_count"`
	CreatedAt    string  `db:"created_at"`
}

type Order struct {
	ID               string         `db:"id"`
	OrderNumber      string         `db:"order_number"`
	UserID           string         `db:"user_id"`
	TotalPrice       float64        `db:"total_price"`
	Status           string         `db:"status"`
	VerificationCode sql.NullString `db:"verification_code"`
	Address          string         `db:"address"`
	CreatedAt        string         `db:"created_at"`
	UpdatedAt        string         `db:"updated_at"`
}

// OrderLine is one row of the immutable product snapshot stored with an
// order. Name and Price are frozen at checkout time.
type OrderLine struct {
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Qty       int     `db:"qty"`
}

type Notification struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	OrderID     string `db:"order_id"`
	OrderNumber string `db:"order_number"`
	Message     string `db:"message"`
	IsRead      bool   `db:"is_read"`
	CreatedAt   string `db:"created_at"`
}

type Review struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	UserID    string `db:"user_id"`
	Reviewer  string `db:"reviewer"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	CreatedAt string `db:"created_at"`
}

type PasswordResetToken struct {
	UserID    string `db:"user_id"`
	Token     string `db:"token"`
	ExpiresAt string `db:"expires_at"`
}
