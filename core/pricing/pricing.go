package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Tax rate and shipping fee are fixed storefront-wide, not configurable
// per order.
var (
	TaxRate     = decimal.NewFromFloat(0.10)
	ShippingFee = decimal.NewFromFloat(5.99)
)

// Quote breaks down the price of a checkout. Amounts carry full precision
// internally and are rounded to 2 fraction digits only when rendered.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

func Calculate(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: ShippingFee,
		Total:    subtotal.Add(tax).Add(ShippingFee),
	}
}

func (q Quote) MarshalJSON() ([]byte, error) {
	out := struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	}{
		Subtotal: q.Subtotal.StringFixed(2),
		Tax:      q.Tax.StringFixed(2),
		Shipping: q.Shipping.StringFixed(2),
		Total:    q.Total.StringFixed(2),
	}

	return json.Marshal(out)
}
