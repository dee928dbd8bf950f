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
	ErrPriceListNotFound = errors.New("price list not found")
)

const priceListColumns = `id, supplier_id, file_name, storage_key, status, log, products_count, uploaded_at, processed_at`

func scanPriceList(row pgx.Row) (*models.PriceList, error) {
	pl := &models.PriceList{}
	err := row.Scan(
		&pl.ID, &pl.SupplierID, &pl.FileName, &pl.StorageKey, &pl.Status,
		&pl.Log, &pl.ProductsCount, &pl.UploadedAt, &pl.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPriceListNotFound
		}
		return nil, err
	}
	return pl, nil
}

// CreatePriceList records a newly uploaded price list file
func (db *DB) CreatePriceList(ctx context.Context, supplierID int, fileName, storageKey string) (*models.PriceList, error) {
	return scanPriceList(db.Pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO price_lists (supplier_id, file_name, storage_key, status)
		VALUES ($1, $2, $3, 'new')
		RETURNING %s
	`, priceListColumns), supplierID, fileName, storageKey))
}

// GetPriceListByID retrieves a price list by ID
func (db *DB) GetPriceListByID(ctx context.Context, id int) (*models.PriceList, error) {
	return scanPriceList(db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM price_lists WHERE id = $1", priceListColumns), id))
}

// ListPriceLists returns a paginated list of price lists, newest first
func (db *DB) ListPriceLists(ctx context.Context, params *models.PriceListListParams) ([]*models.PriceListWithSupplier, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.SupplierID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pl.supplier_id = $%d", argIndex))
		args = append(args, *params.SupplierID)
		argIndex++
	}
	if params.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pl.status = $%d", argIndex))
		args = append(args, *params.Status)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM price_lists pl %s", whereClause)
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT
			pl.id, pl.supplier_id, pl.file_name, pl.storage_key, pl.status,
			pl.log, pl.products_count, pl.uploaded_at, pl.processed_at,
			s.name as supplier_name
		FROM price_lists pl
		JOIN suppliers s ON pl.supplier_id = s.id
		%s
		ORDER BY pl.uploaded_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var lists []*models.PriceListWithSupplier
	for rows.Next() {
		pl := &models.PriceListWithSupplier{}
		err := rows.Scan(
			&pl.ID, &pl.SupplierID, &pl.FileName, &pl.StorageKey, &pl.Status,
			&pl.Log, &pl.ProductsCount, &pl.UploadedAt, &pl.ProcessedAt,
			&pl.SupplierName,
		)
		if err != nil {
			return nil, 0, err
		}
		lists = append(lists, pl)
	}

	return lists, total, nil
}

// SetPriceListStatus updates the processing status of a price list
func (db *DB) SetPriceListStatus(ctx context.Context, id int, status models.PriceListStatus) error {
	tag, err := db.Pool.Exec(ctx,
		"UPDATE price_lists SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPriceListNotFound
	}
	return nil
}

// MarkPriceListProcessed records a successful processing run
func (db *DB) MarkPriceListProcessed(ctx context.Context, id, productsCount int, logLine string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE price_lists
		SET status = 'processed', processed_at = NOW(), products_count = $1, log = $2
		WHERE id = $3
	`, productsCount, logLine, id)
	return err
}

// MarkPriceListFailed records a failed processing run
func (db *DB) MarkPriceListFailed(ctx context.Context, id int, logLine string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE price_lists
		SET status = 'failed', log = $1
		WHERE id = $2
	`, logLine, id)
	return err
}

// DeletePriceList removes a price list record
func (db *DB) DeletePriceList(ctx context.Context, id int) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM price_lists WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPriceListNotFound
	}
	return nil
}
