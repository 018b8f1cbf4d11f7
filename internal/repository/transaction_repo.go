// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"gold-ledger/internal/domain"
)

// TransactionRepository defines the interface for ledger row operations.
// Append is the only write; everything else is an on-demand aggregation over
// the immutable row set.
type TransactionRepository interface {
	// AppendTransaction inserts one ledger row using the provided DBExecutor.
	AppendTransaction(ctx context.Context, q DBExecutor, tx *domain.Transaction) error

	// GetTransactionsByCustomerID retrieves a customer's rows, oldest first.
	GetTransactionsByCustomerID(ctx context.Context, q DBExecutor, customerID int64) ([]domain.Transaction, error)

	// SumDeltasByCustomerID sums the money and gold deltas of a customer's rows.
	SumDeltasByCustomerID(ctx context.Context, q DBExecutor, customerID int64) (money, gold decimal.Decimal, err error)

	// SumMoneyByBankAccountID sums the money delta of rows referencing a bank account.
	SumMoneyByBankAccountID(ctx context.Context, q DBExecutor, accountID int64) (decimal.Decimal, error)

	// RawGoldByPurity groups a customer's raw-gold rows by purity.
	RawGoldByPurity(ctx context.Context, q DBExecutor, customerID int64) ([]domain.PurityBucket, error)

	// JewelryNetByItem sums gold deltas of a customer's jewelry rows per item.
	JewelryNetByItem(ctx context.Context, q DBExecutor, customerID int64) ([]ItemNet, error)
}

// ItemNet is the net gold movement for one referenced jewelry item.
type ItemNet struct {
	ItemID       int64           `db:"item_id"`
	NetGoldGrams decimal.Decimal `db:"net_gold_grams"`
}
