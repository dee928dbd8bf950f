package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/AsanSh/zakup.one/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productColumns = `id, name, article, supplier_id, price_list_id, category_id, unit, base_price, final_price, is_active, created_at, updated_at`

// ListProducts returns a paginated list of products with optional filtering
func (db *DB) ListProducts(ctx context.Context, params *models.ProductListParams) ([]*models.ProductWithDetails, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.ActiveOnly {
		whereClauses = append(whereClauses, "p.is_active")
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(LOWER(p.name) LIKE LOWER($%d) OR LOWER(p.article) LIKE LOWER($%d))",
			argIndex, argIndex,
		))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}
	if params.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *params.CategoryID)
		argIndex++
	}
	if params.SupplierID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.supplier_id = $%d", argIndex))
		args = append(args, *params.SupplierID)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			p.id, p.name, p.article, p.supplier_id, p.price_list_id, p.category_id,
			p.unit, p.base_price, p.final_price, p.is_active, p.created_at, p.updated_at,
			s.name as supplier_name,
			c.name as category_name
		FROM products p
		LEFT JOIN suppliers s ON p.supplier_id = s.id
		LEFT JOIN categories c ON p.category_id = c.id
		%s
		ORDER BY p.name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*models.ProductWithDetails
	for rows.Next() {
		p := &models.ProductWithDetails{}
		err := rows.Scan(
			&p.ID, &p.Name, &p.Article, &p.SupplierID, &p.PriceListID, &p.CategoryID,
			&p.Unit, &p.BasePrice, &p.FinalPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.SupplierName, &p.CategoryName,
		)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, nil
}

// GetProductByID retrieves a product by ID with supplier and category names
func (db *DB) GetProductByID(ctx context.Context, id int) (*models.ProductWithDetails, error) {
	p := &models.ProductWithDetails{}
	err := db.Pool.QueryRow(ctx, `
		SELECT
			p.id, p.name, p.article, p.supplier_id, p.price_list_id, p.category_id,
			p.unit, p.base_price, p.final_price, p.is_active, p.created_at, p.updated_at,
			s.name as supplier_name,
			c.name as category_name
		FROM products p
		LEFT JOIN suppliers s ON p.supplier_id = s.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Article, &p.SupplierID, &p.PriceListID, &p.CategoryID,
		&p.Unit, &p.BasePrice, &p.FinalPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.SupplierName, &p.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpsertParsedProduct creates or updates a product keyed by (article,
// supplier_id). Returns the product and whether it was newly created.
func (db *DB) UpsertParsedProduct(ctx context.Context, supplierID, priceListID int, categoryID *int,
	name, article, unit string, basePrice, finalPrice float64) (*models.Product, bool, error) {

	var created bool
	p := &models.Product{}
	err := db.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO products (name, article, supplier_id, price_list_id, category_id, unit, base_price, final_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		ON CONFLICT (article, supplier_id) DO UPDATE SET
			name = EXCLUDED.name,
			price_list_id = EXCLUDED.price_list_id,
			category_id = EXCLUDED.category_id,
			unit = EXCLUDED.unit,
			base_price = EXCLUDED.base_price,
			final_price = EXCLUDED.final_price,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING %s, (xmax = 0) as created
	`, productColumns),
		name, article, supplierID, priceListID, categoryID, unit, basePrice, finalPrice,
	).Scan(
		&p.ID, &p.Name, &p.Article, &p.SupplierID, &p.PriceListID, &p.CategoryID,
		&p.Unit, &p.BasePrice, &p.FinalPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&created,
	)
	if err != nil {
		return nil, false, err
	}
	return p, created, nil
}

// DeleteProductsByPriceList removes products imported from a price list and
// returns the number deleted
func (db *DB) DeleteProductsByPriceList(ctx context.Context, priceListID int) (int, error) {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM products WHERE price_list_id = $1", priceListID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
