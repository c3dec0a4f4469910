package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/avelara/storefront/api/middleware"
	"github.com/avelara/storefront/api/web"
	"github.com/avelara/storefront/core/cart"
	"github.com/avelara/storefront/core/category"
	"github.com/avelara/storefront/core/order"
	"github.com/avelara/storefront/core/product"
	"github.com/avelara/storefront/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		// Preflight requests are always answered with an empty 200.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	carts := cart.NewStore(cfg.Session)

	a.Handle(http.MethodGet, "/categories", category.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/categories/{id}", category.HandleShow(cfg.DB))

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(carts))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(carts))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleAddItem(cfg.DB, carts))
	a.Handle(http.MethodPut, "/cart/items/{product_id}", cart.HandleUpdateItem(carts))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleRemoveItem(carts))

	a.Handle(http.MethodPost, "/orders", order.HandleCheckout(cfg.DB, carts, cfg.Log))
	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB))

	a.Handle(http.MethodPost, "/functions/decrement-stock", product.HandleDecrementStock(cfg.DB), middleware.RateLimit(cfg.Limiter))

	// The session carries the cart record, so the manager wraps the
	// whole router.
	return cfg.Session.LoadAndSave(a.Router)
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
