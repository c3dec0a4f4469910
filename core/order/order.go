package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Pending Status = "pending"

	// Incomplete marks an order whose line items could not all be
	// written, so the stored rows do not reflect the whole cart.
	Incomplete Status = "incomplete"
)

type Order struct {
	ID         string          `json:"id" db:"order_id"`
	Reference  string          `json:"reference" db:"reference"`
	CustomerID *string         `json:"customerId" db:"customer_id"`
	Total      decimal.Decimal `json:"total" db:"total"`
	Status     Status          `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

type Item struct {
	OrderID   string          `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

type StatusUp struct {
	ID        string    `db:"order_id"`
	Status    Status    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OrderNew carries the checkout form. The payment method is collected for
// display purposes only, no charge is ever made.
type OrderNew struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	ZipCode       string `json:"zipCode" validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
}
