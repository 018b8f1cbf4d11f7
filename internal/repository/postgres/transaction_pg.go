// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository for
// PostgreSQL. The transactions table has no balance column anywhere; every
// read method below is an aggregation over the immutable rows.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// AppendTransaction inserts one ledger row using the provided DBExecutor.
// Rows are insert-only; no update or delete statement exists for this table.
func (r *TransactionRepository) AppendTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.Transaction) error {
	query := `INSERT INTO transactions
              (customer_id, transaction_date, transaction_type, bank_account_id, item_id, price, weight_grams, purity, money_amount, gold_amount_grams, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING transaction_id`
	err := q.QueryRowContext(ctx, query,
		tx.CustomerID,
		tx.TransactionDate,
		tx.TransactionType,
		tx.BankAccountID,
		tx.ItemID,
		tx.Price,
		tx.WeightGrams,
		tx.Purity,
		tx.MoneyAmount,
		tx.GoldAmountGrams,
		tx.Notes,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// GetTransactionsByCustomerID retrieves a customer's rows, oldest first.
// Insertion order is the tie-breaker so replay order is deterministic.
func (r *TransactionRepository) GetTransactionsByCustomerID(ctx context.Context, q repository.DBExecutor, customerID int64) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT transaction_id, customer_id, transaction_date, transaction_type, bank_account_id, item_id,
                     price, weight_grams, purity, money_amount, gold_amount_grams, notes
              FROM transactions
              WHERE customer_id = $1
              ORDER BY transaction_date ASC, transaction_id ASC`
	if err := q.SelectContext(ctx, &transactions, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for customer %d: %w", customerID, err)
	}
	return transactions, nil
}

// SumDeltasByCustomerID sums the money and gold deltas of a customer's rows.
func (r *TransactionRepository) SumDeltasByCustomerID(ctx context.Context, q repository.DBExecutor, customerID int64) (decimal.Decimal, decimal.Decimal, error) {
	var sums struct {
		MoneySum decimal.Decimal `db:"money_sum"`
		GoldSum  decimal.Decimal `db:"gold_sum"`
	}
	query := `SELECT COALESCE(SUM(money_amount), 0) AS money_sum,
                     COALESCE(SUM(gold_amount_grams), 0) AS gold_sum
              FROM transactions WHERE customer_id = $1`
	if err := q.GetContext(ctx, &sums, query, customerID); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum deltas for customer %d: %w", customerID, err)
	}
	return sums.MoneySum, sums.GoldSum, nil
}

// SumMoneyByBankAccountID sums the money delta of rows referencing a bank account.
func (r *TransactionRepository) SumMoneyByBankAccountID(ctx context.Context, q repository.DBExecutor, accountID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(money_amount), 0) FROM transactions WHERE bank_account_id = $1`
	if err := q.GetContext(ctx, &sum, query, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum money for bank account %d: %w", accountID, err)
	}
	return sum, nil
}

// RawGoldByPurity groups a customer's raw-gold rows by purity, one bucket per
// distinct non-null purity value.
func (r *TransactionRepository) RawGoldByPurity(ctx context.Context, q repository.DBExecutor, customerID int64) ([]domain.PurityBucket, error) {
	buckets := []domain.PurityBucket{}
	query := `SELECT purity, SUM(gold_amount_grams) AS net_gold_grams
              FROM transactions
              WHERE customer_id = $1
                AND transaction_type IN ($2, $3, $4, $5)
                AND purity IS NOT NULL
              GROUP BY purity
              ORDER BY purity ASC`
	err := q.SelectContext(ctx, &buckets, query, customerID,
		domain.TypeSellRawGold, domain.TypeBuyRawGold, domain.TypeReceiveRawGold, domain.TypeGiveRawGold)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raw gold position for customer %d: %w", customerID, err)
	}
	return buckets, nil
}

// JewelryNetByItem sums gold deltas of a customer's jewelry rows per item.
func (r *TransactionRepository) JewelryNetByItem(ctx context.Context, q repository.DBExecutor, customerID int64) ([]repository.ItemNet, error) {
	nets := []repository.ItemNet{}
	query := `SELECT item_id, SUM(gold_amount_grams) AS net_gold_grams
              FROM transactions
              WHERE customer_id = $1
                AND transaction_type IN ($2, $3)
                AND item_id IS NOT NULL
              GROUP BY item_id
              ORDER BY item_id ASC`
	err := q.SelectContext(ctx, &nets, query, customerID,
		domain.TypeReceiveJewelry, domain.TypeGiveJewelry)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jewelry position for customer %d: %w", customerID, err)
	}
	return nets, nil
}
