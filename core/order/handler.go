package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avelara/storefront/api/web"
	"github.com/avelara/storefront/api/weberr"
	"github.com/avelara/storefront/core/cart"
	"github.com/avelara/storefront/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func HandleCheckout(db *sqlx.DB, carts *cart.Store, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var form OrderNew
		if err := web.Decode(w, r, &form); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding checkout form: %w", err))
		}

		if err := validate.Check(form); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		crt := carts.Read(ctx)

		ord, err := Submit(ctx, NewBackend(db), log, crt, form)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				return weberr.NewError(err, "your cart is empty", http.StatusUnprocessableEntity)
			}

			// Hard failure: the cart stays intact so the user can retry.
			msg := fmt.Sprintf("failed to place order: %v", err)
			return weberr.NewError(err, msg, http.StatusInternalServerError)
		}

		carts.Clear(ctx)

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		ord, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching order[%s]: %w", id, err)
		}

		items, err := FetchItems(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching items of order[%s]: %w", id, err)
		}

		resp := struct {
			Order
			Items []Item `json:"items"`
		}{
			Order: ord,
			Items: items,
		}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
