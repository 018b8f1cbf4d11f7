// internal/accounting/backend.go
package accounting

import (
	"context"

	"github.com/shopspring/decimal"

	"gold-ledger/internal/domain"
)

// Backend is the capability contract between the orchestration layer and the
// ledger. Callers hold only this interface; whether the rows live in Postgres
// or in memory is invisible to them, and every implementation must answer
// identically for the same ledger content.
type Backend interface {
	// ListAccounts returns account holders filtered by category
	// (customer, collaborator or all), each with derived balances.
	ListAccounts(ctx context.Context, category domain.AccountCategory) ([]Account, error)

	// GetBalance returns one customer's derived money/gold balance:
	// initial balances plus the sum of that customer's ledger deltas.
	GetBalance(ctx context.Context, accountID int64) (domain.Balance, error)

	// GoldPrice returns the current reference price per gram of raw gold.
	// The price itself is supplied externally; this is a passthrough.
	GoldPrice(ctx context.Context) (decimal.Decimal, error)

	// ExecuteTransaction validates, valuates and appends one business event
	// as a single atomic unit. Failures are reported in the Result, never as
	// an error across this boundary.
	ExecuteTransaction(ctx context.Context, req TransactionRequest) Result

	// Transactions returns a customer's ledger rows, oldest first.
	Transactions(ctx context.Context, customerID int64) ([]domain.Transaction, error)

	// RawGoldBalanceByPurity returns the customer's net raw-gold position,
	// one bucket per distinct purity.
	RawGoldBalanceByPurity(ctx context.Context, customerID int64) ([]domain.PurityBucket, error)

	// JewelryBalance returns the derived custody status of every jewelry
	// item the customer's ledger rows reference.
	JewelryBalance(ctx context.Context, customerID int64) ([]domain.JewelryBalance, error)
}

// EntityStore manages the persisted entity records the ledger references.
// Entities live indefinitely; there is no deletion path.
type EntityStore interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	CreateBankAccount(ctx context.Context, a *domain.BankAccount) error
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	// BankAccountBalance derives the net money held in one bank account.
	BankAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)

	CreateJewelryItem(ctx context.Context, j *domain.JewelryItem) error
	ListJewelryItems(ctx context.Context) ([]domain.JewelryItem, error)

	CreateStandardItem(ctx context.Context, s *domain.StandardItem) error
	ListStandardItems(ctx context.Context) ([]domain.StandardItem, error)
}

// PriceSetter is implemented by backends whose reference price can be fed at
// runtime by an external source.
type PriceSetter interface {
	SetGoldPrice(ctx context.Context, pricePerGram decimal.Decimal) error
}

// Account is one account holder with derived balances.
type Account struct {
	ID       int64                  `json:"id"`
	Name     string                 `json:"name"`
	Category domain.AccountCategory `json:"category"`
	Balance  domain.Balance         `json:"balance"`
}

// TransactionRequest is one business event to execute. The details carry
// their own type tag; Notes is free text copied onto the row.
type TransactionRequest struct {
	CustomerID int64
	Details    domain.TransactionDetails
	Notes      *string
}
