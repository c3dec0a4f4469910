package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("category not found")

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`

	categories := []Category{}
	if err := sqlx.SelectContext(ctx, db, &categories, q); err != nil {
		return nil, fmt.Errorf("selecting all categories: %w", err)
	}

	return categories, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int64) (Category, error) {
	const q = `SELECT * FROM categories WHERE category_id = $1`

	var cat Category
	if err := sqlx.GetContext(ctx, db, &cat, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("selecting category[%d]: %w", id, err)
	}

	return cat, nil
}
