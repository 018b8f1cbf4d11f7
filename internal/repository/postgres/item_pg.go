// internal/repository/postgres/item_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/repository"
	"gold-ledger/internal/util"
)

// ItemRepository implements repository.ItemRepository for PostgreSQL.
type ItemRepository struct{}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository() repository.ItemRepository {
	return &ItemRepository{}
}

// CreateJewelryItem inserts a new jewelry item using the provided DBExecutor.
func (r *ItemRepository) CreateJewelryItem(ctx context.Context, q repository.DBExecutor, item *domain.JewelryItem) error {
	query := `INSERT INTO jewelry_items (jewelry_code, name, weight_grams, purity, premium, status)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING jewelry_id`
	err := q.QueryRowContext(ctx, query,
		item.JewelryCode, item.Name, item.WeightGrams, item.Purity, item.Premium, item.Status,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create jewelry item: %w", err)
	}
	return nil
}

// GetJewelryItemByID retrieves a jewelry item by ID using the provided DBExecutor.
func (r *ItemRepository) GetJewelryItemByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.JewelryItem, error) {
	var item domain.JewelryItem
	query := `SELECT jewelry_id, jewelry_code, name, weight_grams, purity, premium, status
              FROM jewelry_items WHERE jewelry_id = $1`
	err := q.GetContext(ctx, &item, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrJewelryNotFound
		}
		return nil, fmt.Errorf("failed to get jewelry item by ID %d: %w", id, err)
	}
	return &item, nil
}

// GetJewelryItemByCode retrieves a jewelry item by its unique code.
func (r *ItemRepository) GetJewelryItemByCode(ctx context.Context, q repository.DBExecutor, code string) (*domain.JewelryItem, error) {
	var item domain.JewelryItem
	query := `SELECT jewelry_id, jewelry_code, name, weight_grams, purity, premium, status
              FROM jewelry_items WHERE jewelry_code = $1`
	err := q.GetContext(ctx, &item, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrJewelryNotFound
		}
		return nil, fmt.Errorf("failed to get jewelry item by code %q: %w", code, err)
	}
	return &item, nil
}

// ListJewelryItems retrieves all jewelry items ordered by ID.
func (r *ItemRepository) ListJewelryItems(ctx context.Context, q repository.DBExecutor) ([]domain.JewelryItem, error) {
	items := []domain.JewelryItem{}
	query := `SELECT jewelry_id, jewelry_code, name, weight_grams, purity, premium, status
              FROM jewelry_items ORDER BY jewelry_id`
	if err := q.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list jewelry items: %w", err)
	}
	return items, nil
}

// UpdateJewelryStatus updates the mutable status label of a jewelry item.
func (r *ItemRepository) UpdateJewelryStatus(ctx context.Context, q repository.DBExecutor, id int64, status string) error {
	query := `UPDATE jewelry_items SET status = $1 WHERE jewelry_id = $2`
	result, err := q.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update jewelry status for ID %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating jewelry status for ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrJewelryNotFound
	}
	return nil
}

// CreateStandardItem inserts a new standard item using the provided DBExecutor.
func (r *ItemRepository) CreateStandardItem(ctx context.Context, q repository.DBExecutor, item *domain.StandardItem) error {
	query := `INSERT INTO standard_items (name, weight_grams, purity)
              VALUES ($1, $2, $3) RETURNING item_id`
	err := q.QueryRowContext(ctx, query, item.Name, item.WeightGrams, item.Purity).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create standard item: %w", err)
	}
	return nil
}

// ListStandardItems retrieves all standard items ordered by ID.
func (r *ItemRepository) ListStandardItems(ctx context.Context, q repository.DBExecutor) ([]domain.StandardItem, error) {
	items := []domain.StandardItem{}
	query := `SELECT item_id, name, weight_grams, purity FROM standard_items ORDER BY item_id`
	if err := q.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list standard items: %w", err)
	}
	return items, nil
}
