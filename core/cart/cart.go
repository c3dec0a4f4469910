package cart

import "github.com/shopspring/decimal"

// Line is one product entry in the cart. Name, UnitPrice, ImageURL and
// Stock are snapshots of the catalog values at the time the product was
// added; they are not re-synced afterwards.
type Line struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"imageUrl"`
	Stock     int             `json:"stock"`
}

// Cart holds at most one line per product.
type Cart struct {
	Items []Line `json:"items"`
}

func (c Cart) Subtotal() decimal.Decimal {
	sub := decimal.Zero
	for _, l := range c.Items {
		sub = sub.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sub
}

func (c Cart) index(productID int64) (int, bool) {
	for i, l := range c.Items {
		if l.ProductID == productID {
			return i, true
		}
	}
	return 0, false
}
