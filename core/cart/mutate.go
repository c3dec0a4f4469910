package cart

import (
	"context"
	"errors"

	"github.com/avelara/storefront/core/product"
)

// ErrInsufficientStock is returned when a mutation would push a line's
// quantity past the stock snapshot. The store is left unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

// Add merges qty units of prd into the cart: an existing line for the
// product is incremented, otherwise a new line is appended with a snapshot
// of the catalog values. The resulting quantity must not exceed the
// product's stock. A quantity below 1 is a no-op: a line is never
// persisted at 0 or negative, removal goes through Remove.
func Add(ctx context.Context, s *Store, prd product.Product, qty int) (Cart, error) {
	crt := s.Read(ctx)

	if qty < 1 {
		return crt, nil
	}

	newQty := qty
	i, ok := crt.index(prd.ID)
	if ok {
		newQty = crt.Items[i].Quantity + qty
	}

	if newQty > prd.Stock {
		return crt, ErrInsufficientStock
	}

	if ok {
		crt.Items[i].Quantity = newQty
	} else {
		crt.Items = append(crt.Items, Line{
			ProductID: prd.ID,
			Name:      prd.Name,
			UnitPrice: prd.Price,
			Quantity:  qty,
			ImageURL:  prd.ImageURL,
			Stock:     prd.Stock,
		})
	}

	if err := s.Write(ctx, crt); err != nil {
		return Cart{}, err
	}

	return crt, nil
}

// Remove drops the line for productID. An absent id is a no-op, not an
// error.
func Remove(ctx context.Context, s *Store, productID int64) (Cart, error) {
	crt := s.Read(ctx)

	i, ok := crt.index(productID)
	if !ok {
		return crt, nil
	}

	crt.Items = append(crt.Items[:i], crt.Items[i+1:]...)

	if err := s.Write(ctx, crt); err != nil {
		return Cart{}, err
	}

	return crt, nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// leaves the line untouched: the floor is deliberate, removal goes through
// Remove. The stock snapshot is enforced as a ceiling, same as Add.
func UpdateQuantity(ctx context.Context, s *Store, productID int64, qty int) (Cart, error) {
	crt := s.Read(ctx)

	if qty < 1 {
		return crt, nil
	}

	i, ok := crt.index(productID)
	if !ok {
		return crt, nil
	}

	if qty > crt.Items[i].Stock {
		return crt, ErrInsufficientStock
	}

	crt.Items[i].Quantity = qty

	if err := s.Write(ctx, crt); err != nil {
		return Cart{}, err
	}

	return crt, nil
}
