package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/AsanSh/zakup.one/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// ListCategories returns all categories with active product counts
func (db *DB) ListCategories(ctx context.Context) ([]*models.CategoryWithCount, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			c.id, c.name, c.created_at,
			COALESCE((SELECT COUNT(*) FROM products WHERE category_id = c.id AND is_active), 0) as product_count
		FROM categories c
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.CategoryWithCount
	for rows.Next() {
		c := &models.CategoryWithCount{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (db *DB) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	c := &models.Category{}
	err := db.Pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM categories WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetOrCreateCategory fetches a category by exact name, creating it if absent
func (db *DB) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	c := &models.Category{}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
