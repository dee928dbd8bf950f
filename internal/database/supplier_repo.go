package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/AsanSh/zakup.one/internal/models"
)

var (
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrSupplierCodeExists = errors.New("supplier internal code already exists")
)

const supplierColumns = `id, name, internal_code, contact_person, phone, email, address, website, markup_som, is_active, created_at, updated_at`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	s := &models.Supplier{}
	err := row.Scan(
		&s.ID, &s.Name, &s.InternalCode, &s.ContactPerson, &s.Phone, &s.Email,
		&s.Address, &s.Website, &s.MarkupSom, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListSuppliers returns a paginated list of suppliers with product and price
// list counts, optionally filtered by active state
func (db *DB) ListSuppliers(ctx context.Context, params *models.SupplierListParams) ([]*models.SupplierWithStats, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.IsActive != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("s.is_active = $%d", argIndex))
		args = append(args, *params.IsActive)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM suppliers s %s", whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			s.id, s.name, s.internal_code, s.contact_person, s.phone, s.email,
			s.address, s.website, s.markup_som, s.is_active, s.created_at, s.updated_at,
			COALESCE((SELECT COUNT(*) FROM products WHERE supplier_id = s.id), 0) as product_count,
			COALESCE((SELECT COUNT(*) FROM price_lists WHERE supplier_id = s.id), 0) as price_list_count
		FROM suppliers s
		%s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []*models.SupplierWithStats
	for rows.Next() {
		s := &models.SupplierWithStats{}
		err := rows.Scan(
			&s.ID, &s.Name, &s.InternalCode, &s.ContactPerson, &s.Phone, &s.Email,
			&s.Address, &s.Website, &s.MarkupSom, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&s.ProductCount, &s.PriceListCount,
		)
		if err != nil {
			return nil, 0, err
		}
		suppliers = append(suppliers, s)
	}

	return suppliers, total, nil
}

// GetSupplierByID retrieves a supplier by ID
func (db *DB) GetSupplierByID(ctx context.Context, id int) (*models.Supplier, error) {
	return scanSupplier(db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM suppliers WHERE id = $1", supplierColumns), id))
}

// GetSupplierByInternalCode retrieves a supplier by its internal code
func (db *DB) GetSupplierByInternalCode(ctx context.Context, code string) (*models.Supplier, error) {
	return scanSupplier(db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM suppliers WHERE internal_code = $1", supplierColumns), code))
}

// CreateSupplier creates a new supplier
func (db *DB) CreateSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	supplier, err := scanSupplier(db.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO suppliers (name, internal_code, contact_person, phone, email, address, website, markup_som)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, supplierColumns),
		req.Name, req.InternalCode, req.ContactPerson, req.Phone, req.Email,
		req.Address, req.Website, req.MarkupSom,
	))
	if err != nil {
		if strings.Contains(err.Error(), "suppliers_internal_code_key") {
			return nil, ErrSupplierCodeExists
		}
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates a supplier. When markup_som changes, final prices of
// all the supplier's products are recomputed in the same transaction.
func (db *DB) UpdateSupplier(ctx context.Context, id int, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := scanSupplier(tx.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM suppliers WHERE id = $1 FOR UPDATE", supplierColumns), id))
	if err != nil {
		return nil, err
	}

	setClauses := []string{"updated_at = NOW()"}
	var args []interface{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.ContactPerson != nil {
		addSet("contact_person", *req.ContactPerson)
	}
	if req.Phone != nil {
		addSet("phone", *req.Phone)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Address != nil {
		addSet("address", *req.Address)
	}
	if req.Website != nil {
		addSet("website", *req.Website)
	}
	if req.MarkupSom != nil {
		addSet("markup_som", *req.MarkupSom)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE suppliers SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argIndex, supplierColumns)

	updated, err := scanSupplier(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if req.MarkupSom != nil && *req.MarkupSom != current.MarkupSom {
		tag, err := tx.Exec(ctx, `
			UPDATE products SET final_price = base_price + $1, updated_at = NOW()
			WHERE supplier_id = $2
		`, updated.MarkupSom, id)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute product prices: %w", err)
		}
		if tag.RowsAffected() > 0 {
			log.Printf("Recomputed %d product prices for supplier %d", tag.RowsAffected(), id)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSupplier deletes a supplier and cascades to its price lists
func (db *DB) DeleteSupplier(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
