package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelara/storefront/api/web"
	"github.com/avelara/storefront/api/weberr"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		categories, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching categories: %w", err)
		}

		return web.Respond(ctx, w, categories, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := strconv.ParseInt(web.Param(r, "id"), 10, 64)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing category id: %w", err))
		}

		cat, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching category[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, cat, http.StatusOK)
	}
}
