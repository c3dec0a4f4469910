package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avelara/storefront/api/web"
	"github.com/avelara/storefront/api/weberr"
	"github.com/avelara/storefront/database"
	"github.com/avelara/storefront/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var (
			products []Product
			err      error
		)

		if cat := r.URL.Query().Get("category"); cat != "" {
			catID, perr := strconv.ParseInt(cat, 10, 64)
			if perr != nil {
				return weberr.BadRequest(fmt.Errorf("parsing category filter: %w", perr))
			}
			products, err = FetchByCategory(ctx, db, catID)
		} else {
			products, err = FetchAll(ctx, db)
		}

		if err != nil {
			return fmt.Errorf("fetching products: %w", err)
		}

		return web.Respond(ctx, w, products, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing product id: %w", err))
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding product: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		prd := Product{
			Name:        pn.Name,
			Description: pn.Description,
			Price:       pn.Price,
			ImageURL:    pn.ImageURL,
			Stock:       pn.Stock,
			CategoryID:  pn.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		prd, err := Create(ctx, db, prd)
		if err != nil {
			return fmt.Errorf("creating product: %w", err)
		}

		return web.Respond(ctx, w, prd, http.StatusCreated)
	}
}

// HandleDecrementStock is the standalone stock-decrement endpoint: it reads
// the current stock, floors the result at zero and writes it back, in one
// transaction so concurrent decrements cannot interleave. Fetch and write
// failures surface with their detail.
func HandleDecrementStock(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var ds DecrementStock
		if err := web.Decode(w, r, &ds); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding decrement request: %w", err))
		}

		if ds.ProductID <= 0 || ds.Quantity <= 0 {
			err := errors.New("product_id and quantity are required")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var newStock int
		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			prd, err := Fetch(ctx, tx, ds.ProductID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return weberr.NotFound(err)
				}
				return weberr.NewError(err, "error fetching product stock", http.StatusInternalServerError)
			}

			newStock = prd.Stock - ds.Quantity
			if newStock < 0 {
				newStock = 0
			}

			if err := SetStock(ctx, tx, ds.ProductID, newStock); err != nil {
				return weberr.NewError(err, "error updating stock", http.StatusInternalServerError)
			}

			return nil
		})
		if err != nil {
			return err
		}

		resp := struct {
			Success  bool `json:"success"`
			NewStock int  `json:"newStock"`
		}{
			Success:  true,
			NewStock: newStock,
		}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
