package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

func Fetch(ctx context.Context, db sqlx.ExtContext, id int64) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%d]: %w", id, err)
	}

	return prd, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY product_id`

	products := []Product{}
	if err := sqlx.SelectContext(ctx, db, &products, q); err != nil {
		return nil, fmt.Errorf("selecting all products: %w", err)
	}

	return products, nil
}

func FetchByCategory(ctx context.Context, db sqlx.ExtContext, categoryID int64) ([]Product, error) {
	const q = `SELECT * FROM products WHERE category_id = $1 ORDER BY product_id`

	products := []Product{}
	if err := sqlx.SelectContext(ctx, db, &products, q, categoryID); err != nil {
		return nil, fmt.Errorf("selecting products of category[%d]: %w", categoryID, err)
	}

	return products, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, prd Product) (Product, error) {
	const q = `
	INSERT INTO products (name, description, price, image_url, stock, category_id, created_at, updated_at)
	VALUES (:name, :description, :price, :image_url, :stock, :category_id, :created_at, :updated_at)
	RETURNING product_id`

	rows, err := sqlx.NamedQueryContext(ctx, db, q, prd)
	if err != nil {
		return Product{}, fmt.Errorf("inserting product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Product{}, errors.New("inserting product: no id returned")
	}
	if err := rows.Scan(&prd.ID); err != nil {
		return Product{}, fmt.Errorf("scanning product id: %w", err)
	}

	return prd, nil
}

// SetStock overwrites the stock counter of a product.
func SetStock(ctx context.Context, db sqlx.ExtContext, id int64, stock int) error {
	const q = `UPDATE products SET stock = $2, updated_at = now() AT TIME ZONE 'utc' WHERE product_id = $1`

	if _, err := db.ExecContext(ctx, q, id, stock); err != nil {
		return fmt.Errorf("updating stock of product[%d]: %w", id, err)
	}

	return nil
}

// ReduceStock decrements the stock of a product by qty, floored at zero.
// The update is guarded on the current stock being positive: a product
// already at zero is left untouched.
func ReduceStock(ctx context.Context, db sqlx.ExtContext, id int64, qty int) error {
	const q = `
	UPDATE products
	SET stock = GREATEST(stock - $2, 0), updated_at = now() AT TIME ZONE 'utc'
	WHERE product_id = $1 AND stock > 0`

	if _, err := db.ExecContext(ctx, q, id, qty); err != nil {
		return fmt.Errorf("reducing stock of product[%d]: %w", id, err)
	}

	return nil
}
