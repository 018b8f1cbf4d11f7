// internal/repository/postgres/bank_account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/repository"
	"gold-ledger/internal/util"
)

// BankAccountRepository implements repository.BankAccountRepository for PostgreSQL.
type BankAccountRepository struct{}

// NewBankAccountRepository creates a new BankAccountRepository.
func NewBankAccountRepository() repository.BankAccountRepository {
	return &BankAccountRepository{}
}

// CreateBankAccount inserts a new bank account using the provided DBExecutor.
func (r *BankAccountRepository) CreateBankAccount(ctx context.Context, q repository.DBExecutor, account *domain.BankAccount) error {
	query := `INSERT INTO bank_accounts (account_name) VALUES ($1) RETURNING account_id`
	err := q.QueryRowContext(ctx, query, account.AccountName).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create bank account: %w", err)
	}
	return nil
}

// GetBankAccountByID retrieves a bank account by ID using the provided DBExecutor.
func (r *BankAccountRepository) GetBankAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.BankAccount, error) {
	var account domain.BankAccount
	query := `SELECT account_id, account_name FROM bank_accounts WHERE account_id = $1`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("failed to get bank account by ID %d: %w", id, err)
	}
	return &account, nil
}

// ListBankAccounts retrieves all bank accounts ordered by ID.
func (r *BankAccountRepository) ListBankAccounts(ctx context.Context, q repository.DBExecutor) ([]domain.BankAccount, error) {
	accounts := []domain.BankAccount{}
	query := `SELECT account_id, account_name FROM bank_accounts ORDER BY account_id`
	if err := q.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}
