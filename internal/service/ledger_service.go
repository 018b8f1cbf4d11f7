// internal/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/domain"
	"gold-ledger/internal/repository"
	"gold-ledger/internal/util"
	"gold-ledger/pkg/db"
)

// LedgerService is the Postgres-backed implementation of the accounting
// contract: entity management, atomic transaction execution, and derived
// balance projections.
type LedgerService interface {
	accounting.Backend
	accounting.EntityStore
	accounting.PriceSetter
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner       // for starting transactions (e.g. *sqlx.DB)
	dbExecutor      repository.DBExecutor // for non-transactional reads (e.g. *sqlx.DB)
	customerRepo    repository.CustomerRepository
	bankAccountRepo repository.BankAccountRepository
	itemRepo        repository.ItemRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc

	priceMu          sync.RWMutex
	goldPricePerGram decimal.Decimal
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	customerRepo repository.CustomerRepository,
	bankAccountRepo repository.BankAccountRepository,
	itemRepo repository.ItemRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	goldPricePerGram decimal.Decimal,
) LedgerService {
	return &ledgerService{
		dbBeginner:       dbBeginner,
		dbExecutor:       dbExecutor,
		customerRepo:     customerRepo,
		bankAccountRepo:  bankAccountRepo,
		itemRepo:         itemRepo,
		transactionRepo:  transactionRepo,
		beginTx:          beginTx,
		commitTx:         commitTx,
		rollbackTx:       rollbackTx,
		goldPricePerGram: goldPricePerGram,
	}
}

// ExecuteTransaction validates, valuates and appends one business event as a
// single atomic unit. All failures surface in the Result; the ledger is
// untouched whenever the status is error.
func (s *ledgerService) ExecuteTransaction(ctx context.Context, req accounting.TransactionRequest) accounting.Result {
	id, err := s.executeTransaction(ctx, req)
	if err != nil {
		return accounting.Failure(err)
	}
	return accounting.Success(strconv.FormatInt(id, 10))
}

// executeTransaction is validate-then-append: every reference is resolved and
// every delta computed before the row is written, inside one transaction
// shared with the jewelry-status side effect.
func (s *ledgerService) executeTransaction(ctx context.Context, req accounting.TransactionRequest) (int64, error) {
	if err := domain.ValidateDetails(req.Details); err != nil {
		return 0, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return 0, fmt.Errorf("execute transaction: failed to begin transaction: %w", classifyStoreError(err))
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return 0, fmt.Errorf("execute transaction: transaction controller does not implement DBExecutor")
	}

	if _, err := s.customerRepo.GetCustomerByID(ctx, txExecutor, req.CustomerID); err != nil {
		return 0, err
	}

	var refs domain.ValuationRefs
	if routed, ok := req.Details.(domain.BankRouted); ok {
		if _, err := s.bankAccountRepo.GetBankAccountByID(ctx, txExecutor, routed.BankAccount()); err != nil {
			return 0, err
		}
	}
	if coded, ok := req.Details.(domain.JewelryCoded); ok {
		item, err := s.itemRepo.GetJewelryItemByCode(ctx, txExecutor, coded.Code())
		if err != nil {
			return 0, err
		}
		refs.Jewelry = item
	}

	valuation, err := req.Details.Valuate(refs)
	if err != nil {
		return 0, err
	}

	// Receiving jewelry marks the catalog record as consignment stock, in the
	// same transaction as the append.
	if _, ok := req.Details.(domain.ReceiveJewelryDetails); ok {
		if err := s.itemRepo.UpdateJewelryStatus(ctx, txExecutor, refs.Jewelry.ID, domain.JewelryStatusConsignment); err != nil {
			return 0, fmt.Errorf("execute transaction: failed to update jewelry status: %w", classifyStoreError(err))
		}
	}

	row := domain.NewTransaction(req.CustomerID, req.Details.Type(), valuation, req.Notes)
	if err := s.transactionRepo.AppendTransaction(ctx, txExecutor, row); err != nil {
		return 0, fmt.Errorf("execute transaction: failed to append ledger row: %w", classifyStoreError(err))
	}

	if err := s.commitTx(txController); err != nil {
		return 0, fmt.Errorf("execute transaction: failed to commit: %w", classifyStoreError(err))
	}

	return row.ID, nil
}

// GetBalance returns a customer's derived balance: the baseline captured at
// account creation plus the sum of that customer's ledger deltas.
func (s *ledgerService) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	customer, err := s.customerRepo.GetCustomerByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return domain.Balance{}, err
	}
	moneySum, goldSum, err := s.transactionRepo.SumDeltasByCustomerID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return domain.Balance{
		Money:     customer.InitialMoneyBalance.Add(moneySum),
		GoldGrams: customer.InitialGoldBalanceGrams.Add(goldSum),
	}, nil
}

// ListAccounts returns account holders filtered by category, each with
// derived balances.
func (s *ledgerService) ListAccounts(ctx context.Context, category domain.AccountCategory) ([]accounting.Account, error) {
	if category != domain.CategoryAll && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown account category %q", util.ErrInvalidPayload, category)
	}
	customers, err := s.customerRepo.ListCustomers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := []accounting.Account{}
	for _, customer := range customers {
		if category != domain.CategoryAll && customer.Category != category {
			continue
		}
		balance, err := s.GetBalance(ctx, customer.ID)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, accounting.Account{
			ID:       customer.ID,
			Name:     customer.FullName,
			Category: customer.Category,
			Balance:  balance,
		})
	}
	return accounts, nil
}

// GoldPrice returns the current reference price per gram.
func (s *ledgerService) GoldPrice(ctx context.Context) (decimal.Decimal, error) {
	s.priceMu.RLock()
	defer s.priceMu.RUnlock()
	return s.goldPricePerGram, nil
}

// SetGoldPrice updates the reference price supplied by an external source.
func (s *ledgerService) SetGoldPrice(ctx context.Context, pricePerGram decimal.Decimal) error {
	if pricePerGram.Sign() <= 0 {
		return fmt.Errorf("%w: gold price must be positive", util.ErrInvalidPayload)
	}
	s.priceMu.Lock()
	defer s.priceMu.Unlock()
	s.goldPricePerGram = pricePerGram
	return nil
}

// Transactions returns a customer's ledger rows, oldest first.
func (s *ledgerService) Transactions(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	if _, err := s.customerRepo.GetCustomerByID(ctx, s.dbExecutor, customerID); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetTransactionsByCustomerID(ctx, s.dbExecutor, customerID)
}

// RawGoldBalanceByPurity returns the customer's net raw-gold position, one
// bucket per distinct purity.
func (s *ledgerService) RawGoldBalanceByPurity(ctx context.Context, customerID int64) ([]domain.PurityBucket, error) {
	if _, err := s.customerRepo.GetCustomerByID(ctx, s.dbExecutor, customerID); err != nil {
		return nil, err
	}
	return s.transactionRepo.RawGoldByPurity(ctx, s.dbExecutor, customerID)
}

// JewelryBalance derives the custody status of every jewelry item the
// customer's ledger rows reference, purely from the net gold moved per item.
func (s *ledgerService) JewelryBalance(ctx context.Context, customerID int64) ([]domain.JewelryBalance, error) {
	if _, err := s.customerRepo.GetCustomerByID(ctx, s.dbExecutor, customerID); err != nil {
		return nil, err
	}
	nets, err := s.transactionRepo.JewelryNetByItem(ctx, s.dbExecutor, customerID)
	if err != nil {
		return nil, err
	}
	balances := []domain.JewelryBalance{}
	for _, net := range nets {
		code := strconv.FormatInt(net.ItemID, 10)
		if item, err := s.itemRepo.GetJewelryItemByID(ctx, s.dbExecutor, net.ItemID); err == nil {
			code = item.JewelryCode
		} else if !util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("jewelry balance: %w", err)
		}
		balances = append(balances, domain.JewelryBalance{
			JewelryCode: code,
			Status:      domain.CustodyStatusOf(net.NetGoldGrams),
		})
	}
	return balances, nil
}

// CreateCustomer persists a new account holder.
func (s *ledgerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.FullName == "" {
		return fmt.Errorf("%w: customer full name is required", util.ErrInvalidPayload)
	}
	if !customer.Category.Valid() {
		customer.Category = domain.CategoryCustomer
	}
	if err := s.customerRepo.CreateCustomer(ctx, s.dbExecutor, customer); err != nil {
		return fmt.Errorf("create customer: %w", classifyStoreError(err))
	}
	return nil
}

// GetCustomer retrieves one customer record.
func (s *ledgerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetCustomerByID(ctx, s.dbExecutor, id)
}

// ListCustomers retrieves all customer records.
func (s *ledgerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, s.dbExecutor)
}

// CreateBankAccount persists a new money-holding bucket.
func (s *ledgerService) CreateBankAccount(ctx context.Context, account *domain.BankAccount) error {
	if account.AccountName == "" {
		return fmt.Errorf("%w: bank account name is required", util.ErrInvalidPayload)
	}
	if err := s.bankAccountRepo.CreateBankAccount(ctx, s.dbExecutor, account); err != nil {
		return fmt.Errorf("create bank account: %w", classifyStoreError(err))
	}
	return nil
}

// ListBankAccounts retrieves all bank accounts.
func (s *ledgerService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.bankAccountRepo.ListBankAccounts(ctx, s.dbExecutor)
}

// BankAccountBalance derives the net money held in one bank account from the
// ledger rows that reference it. Bank accounts carry no baseline.
func (s *ledgerService) BankAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	if _, err := s.bankAccountRepo.GetBankAccountByID(ctx, s.dbExecutor, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.transactionRepo.SumMoneyByBankAccountID(ctx, s.dbExecutor, accountID)
}

// CreateJewelryItem catalogues a new jewelry unit. A missing code gets a
// generated one so the unit stays referenceable by transactions.
func (s *ledgerService) CreateJewelryItem(ctx context.Context, item *domain.JewelryItem) error {
	if item.JewelryCode == "" {
		item.JewelryCode = generateJewelryCode()
	}
	if item.Status == "" {
		item.Status = domain.JewelryStatusInStock
	}
	if item.WeightGrams.Sign() <= 0 || item.Purity.Sign() <= 0 || item.Purity.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: jewelry weight must be positive and purity in (0, 1]", util.ErrInvalidPayload)
	}
	if err := s.itemRepo.CreateJewelryItem(ctx, s.dbExecutor, item); err != nil {
		return fmt.Errorf("create jewelry item: %w", classifyStoreError(err))
	}
	return nil
}

// ListJewelryItems retrieves all jewelry items.
func (s *ledgerService) ListJewelryItems(ctx context.Context) ([]domain.JewelryItem, error) {
	return s.itemRepo.ListJewelryItems(ctx, s.dbExecutor)
}

// CreateStandardItem catalogues a new standard item.
func (s *ledgerService) CreateStandardItem(ctx context.Context, item *domain.StandardItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: standard item name is required", util.ErrInvalidPayload)
	}
	if err := s.itemRepo.CreateStandardItem(ctx, s.dbExecutor, item); err != nil {
		return fmt.Errorf("create standard item: %w", classifyStoreError(err))
	}
	return nil
}

// ListStandardItems retrieves all standard items.
func (s *ledgerService) ListStandardItems(ctx context.Context) ([]domain.StandardItem, error) {
	return s.itemRepo.ListStandardItems(ctx, s.dbExecutor)
}

func generateJewelryCode() string {
	return "JW-" + strings.ToUpper(uuid.NewString()[:8])
}

// classifyStoreError maps Postgres contention errors onto ErrConflict so
// callers know the whole call is safe to retry.
func classifyStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", util.ErrConflict, err)
		}
	}
	return err
}
