package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("customer not found")

// FetchByEmail returns the customer registered under email, if any.
func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (Customer, error) {
	const q = `SELECT * FROM customers WHERE email = $1`

	var cst Customer
	if err := sqlx.GetContext(ctx, db, &cst, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("selecting customer by email: %w", err)
	}

	return cst, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, cst Customer) error {
	const q = `
	INSERT INTO customers (customer_id, first_name, last_name, email, phone, address, created_at)
	VALUES (:customer_id, :first_name, :last_name, :email, :phone, :address, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, cst); err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	return nil
}
