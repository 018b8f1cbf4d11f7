// internal/repository/bank_account_repo.go
package repository

import (
	"context"

	"gold-ledger/internal/domain"
)

// BankAccountRepository defines the interface for bank account data operations.
type BankAccountRepository interface {
	// CreateBankAccount adds a new bank account using the provided DBExecutor.
	CreateBankAccount(ctx context.Context, q DBExecutor, account *domain.BankAccount) error
	// GetBankAccountByID retrieves a bank account by ID using the provided DBExecutor.
	GetBankAccountByID(ctx context.Context, q DBExecutor, id int64) (*domain.BankAccount, error)
	// ListBankAccounts retrieves all bank accounts ordered by ID.
	ListBankAccounts(ctx context.Context, q DBExecutor) ([]domain.BankAccount, error)
}
