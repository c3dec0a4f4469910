package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ImageURL    *string         `json:"imageUrl" db:"image_url"`
	Stock       int             `json:"stock" db:"stock"`
	CategoryID  *int64          `json:"categoryId" db:"category_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

type ProductNew struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    *string         `json:"imageUrl"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  *int64          `json:"categoryId"`
}

// DecrementStock is the payload of the public stock-decrement endpoint.
type DecrementStock struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
