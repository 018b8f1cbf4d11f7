// internal/repository/item_repo.go
package repository

import (
	"context"

	"gold-ledger/internal/domain"
)

// ItemRepository defines the interface for catalog item data operations,
// covering both jewelry and standard items.
type ItemRepository interface {
	// CreateJewelryItem adds a new jewelry item using the provided DBExecutor.
	CreateJewelryItem(ctx context.Context, q DBExecutor, item *domain.JewelryItem) error
	// GetJewelryItemByID retrieves a jewelry item by ID.
	GetJewelryItemByID(ctx context.Context, q DBExecutor, id int64) (*domain.JewelryItem, error)
	// GetJewelryItemByCode retrieves a jewelry item by its unique code.
	GetJewelryItemByCode(ctx context.Context, q DBExecutor, code string) (*domain.JewelryItem, error)
	// ListJewelryItems retrieves all jewelry items ordered by ID.
	ListJewelryItems(ctx context.Context, q DBExecutor) ([]domain.JewelryItem, error)
	// UpdateJewelryStatus updates the mutable status label of a jewelry item.
	// Run on the same DBExecutor (transaction) as the ledger append that
	// triggers it.
	UpdateJewelryStatus(ctx context.Context, q DBExecutor, id int64, status string) error

	// CreateStandardItem adds a new standard item using the provided DBExecutor.
	CreateStandardItem(ctx context.Context, q DBExecutor, item *domain.StandardItem) error
	// ListStandardItems retrieves all standard items ordered by ID.
	ListStandardItems(ctx context.Context, q DBExecutor) ([]domain.StandardItem, error)
}
