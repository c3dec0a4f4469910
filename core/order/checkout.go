package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelara/storefront/core/cart"
	"github.com/avelara/storefront/core/customer"
	"github.com/avelara/storefront/core/pricing"
	"github.com/avelara/storefront/core/product"
	"github.com/avelara/storefront/random"
	"github.com/avelara/storefront/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var ErrEmptyCart = errors.New("cart is empty")

// Backend is the slice of the catalog/order service the submission
// workflow talks to.
type Backend interface {
	CustomerByEmail(ctx context.Context, email string) (customer.Customer, error)
	CreateCustomer(ctx context.Context, cst customer.Customer) error
	CreateOrder(ctx context.Context, ord Order) error
	CreateItem(ctx context.Context, it Item) error
	MarkIncomplete(ctx context.Context, orderID string) error
	ReduceStock(ctx context.Context, productID int64, qty int) error
}

type sqlBackend struct {
	db *sqlx.DB
}

func NewBackend(db *sqlx.DB) Backend {
	return &sqlBackend{db: db}
}

func (b *sqlBackend) CustomerByEmail(ctx context.Context, email string) (customer.Customer, error) {
	return customer.FetchByEmail(ctx, b.db, email)
}

func (b *sqlBackend) CreateCustomer(ctx context.Context, cst customer.Customer) error {
	return customer.Create(ctx, b.db, cst)
}

func (b *sqlBackend) CreateOrder(ctx context.Context, ord Order) error {
	return Create(ctx, b.db, ord)
}

func (b *sqlBackend) CreateItem(ctx context.Context, it Item) error {
	return CreateItem(ctx, b.db, it)
}

func (b *sqlBackend) MarkIncomplete(ctx context.Context, orderID string) error {
	return UpdateStatus(ctx, b.db, StatusUp{
		ID:        orderID,
		Status:    Incomplete,
		UpdatedAt: time.Now().UTC(),
	})
}

func (b *sqlBackend) ReduceStock(ctx context.Context, productID int64, qty int) error {
	return product.ReduceStock(ctx, b.db, productID, qty)
}

// Submit runs the order submission workflow: resolve the customer, create
// the order and its items, reduce catalog stock. It is linear with no
// backward transitions and stops at the first hard failure. The caller
// keeps the cart untouched on error and clears it on success.
func Submit(ctx context.Context, be Backend, log logrus.FieldLogger, crt cart.Cart, form OrderNew) (Order, error) {
	if len(crt.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	// Customer resolution is best-effort: an anonymous order beats a
	// failed checkout.
	var customerID *string
	cst, err := be.CustomerByEmail(ctx, form.Email)
	switch {
	case err == nil:
		customerID = &cst.ID

	case errors.Is(err, customer.ErrNotFound):
		nc := customer.Customer{
			ID:        validate.GenerateID(),
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Address:   fmt.Sprintf("%s, %s, %s %s", form.Address, form.City, strings.ToUpper(form.State), form.ZipCode),
			CreatedAt: time.Now().UTC(),
		}
		if err := be.CreateCustomer(ctx, nc); err != nil {
			log.WithField("email", form.Email).Warnf("creating customer: %v", err)
		} else {
			customerID = &nc.ID
		}

	default:
		log.WithField("email", form.Email).Warnf("looking up customer: %v", err)
	}

	quote := pricing.Calculate(crt.Subtotal())

	now := time.Now().UTC()
	ord := Order{
		ID:         validate.GenerateID(),
		Reference:  random.String(10),
		CustomerID: customerID,
		Total:      quote.Total,
		Status:     Pending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := be.CreateOrder(ctx, ord); err != nil {
		return Order{}, fmt.Errorf("creating order: %w", err)
	}

	for _, line := range crt.Items {
		it := Item{
			OrderID:   ord.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			CreatedAt: now,
		}

		if err := be.CreateItem(ctx, it); err != nil {
			// Items written so far stay in place; mark the order so
			// the partial write is visible downstream.
			if errUp := be.MarkIncomplete(ctx, ord.ID); errUp != nil {
				log.Warnf("marking order[%s] incomplete: %v", ord.ID, errUp)
			}
			return Order{}, fmt.Errorf("creating item for product[%d]: %w", line.ProductID, err)
		}
	}

	// Stock reduction is best-effort: the order is placed either way.
	for _, line := range crt.Items {
		if err := be.ReduceStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Warnf("reducing stock of product[%d]: %v", line.ProductID, err)
		}
	}

	return ord, nil
}
