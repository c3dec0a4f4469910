package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelara/storefront/api/web"
	"github.com/avelara/storefront/api/weberr"
	"github.com/avelara/storefront/core/pricing"
	"github.com/avelara/storefront/core/product"
	"github.com/avelara/storefront/validate"
	"github.com/jmoiron/sqlx"
)

type ItemNew struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1"`
}

type QuantityUp struct {
	Quantity int `json:"quantity"`
}

type view struct {
	Message string        `json:"message,omitempty"`
	Items   []Line        `json:"items"`
	Pricing pricing.Quote `json:"pricing"`
}

func respondCart(ctx context.Context, w http.ResponseWriter, crt Cart, msg string) error {
	v := view{
		Message: msg,
		Items:   crt.Items,
		Pricing: pricing.Calculate(crt.Subtotal()),
	}
	if v.Items == nil {
		v.Items = []Line{}
	}

	return web.Respond(ctx, w, v, http.StatusOK)
}

func HandleShow(carts *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return respondCart(ctx, w, carts.Read(ctx), "")
	}
}

func HandleAddItem(db *sqlx.DB, carts *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding cart item: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if in.Quantity == 0 {
			in.Quantity = 1
		}

		prd, err := product.Fetch(ctx, db, in.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%d]: %w", in.ProductID, err)
		}

		_, merged := carts.Read(ctx).index(prd.ID)

		crt, err := Add(ctx, carts, prd, in.Quantity)
		if err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				msg := fmt.Sprintf("sorry, only %d items available in stock", prd.Stock)
				return weberr.NewError(err, msg, http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("adding product[%d] to cart: %w", in.ProductID, err)
		}

		msg := fmt.Sprintf("%s added to cart", prd.Name)
		if merged {
			msg = fmt.Sprintf("updated %s quantity in your cart", prd.Name)
		}

		return respondCart(ctx, w, crt, msg)
	}
}

func HandleUpdateItem(carts *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "product_id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing product id: %w", err))
		}

		var up QuantityUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding quantity: %w", err))
		}

		crt, err := UpdateQuantity(ctx, carts, id, up.Quantity)
		if err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				return weberr.NewError(err, "sorry, not enough items available in stock", http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("updating quantity of product[%d]: %w", id, err)
		}

		return respondCart(ctx, w, crt, "")
	}
}

func HandleRemoveItem(carts *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "product_id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing product id: %w", err))
		}

		crt, err := Remove(ctx, carts, id)
		if err != nil {
			return fmt.Errorf("removing product[%d] from cart: %w", id, err)
		}

		return respondCart(ctx, w, crt, "")
	}
}

func HandleDelete(carts *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		carts.Clear(ctx)
		return respondCart(ctx, w, Cart{}, "cart cleared")
	}
}
