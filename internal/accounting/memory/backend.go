// internal/accounting/memory/backend.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/domain"
	"gold-ledger/internal/util"
)

// Backend is the in-memory implementation of the accounting contract. It
// keeps the same semantics as the Postgres-backed service: an append-only row
// slice, balances derived by replay on every query, and atomic execution
// under one lock. Useful for tests and for running the API without a
// database.
type Backend struct {
	mu sync.Mutex

	customers     map[int64]*domain.Customer
	bankAccounts  map[int64]*domain.BankAccount
	jewelryItems  map[int64]*domain.JewelryItem
	jewelryByCode map[string]int64
	standardItems map[int64]*domain.StandardItem
	transactions  []domain.Transaction

	nextCustomerID    int64
	nextBankAccountID int64
	nextJewelryID     int64
	nextStandardID    int64
	nextTransactionID int64

	goldPricePerGram decimal.Decimal
}

var (
	_ accounting.Backend     = (*Backend)(nil)
	_ accounting.EntityStore = (*Backend)(nil)
	_ accounting.PriceSetter = (*Backend)(nil)
)

// NewBackend creates an empty in-memory backend with the given reference
// gold price.
func NewBackend(goldPricePerGram decimal.Decimal) *Backend {
	return &Backend{
		customers:     make(map[int64]*domain.Customer),
		bankAccounts:  make(map[int64]*domain.BankAccount),
		jewelryItems:  make(map[int64]*domain.JewelryItem),
		jewelryByCode: make(map[string]int64),
		standardItems: make(map[int64]*domain.StandardItem),

		goldPricePerGram: goldPricePerGram,
	}
}

// ExecuteTransaction validates, valuates and appends one business event.
// Validation happens entirely before the append; a rejected event leaves the
// row slice and every catalog record untouched.
func (b *Backend) ExecuteTransaction(ctx context.Context, req accounting.TransactionRequest) accounting.Result {
	id, err := b.executeTransaction(req)
	if err != nil {
		return accounting.Failure(err)
	}
	return accounting.Success(strconv.FormatInt(id, 10))
}

func (b *Backend) executeTransaction(req accounting.TransactionRequest) (int64, error) {
	if err := domain.ValidateDetails(req.Details); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.customers[req.CustomerID]; !ok {
		return 0, util.ErrCustomerNotFound
	}

	var refs domain.ValuationRefs
	if routed, ok := req.Details.(domain.BankRouted); ok {
		if _, ok := b.bankAccounts[routed.BankAccount()]; !ok {
			return 0, util.ErrBankAccountNotFound
		}
	}
	if coded, ok := req.Details.(domain.JewelryCoded); ok {
		id, ok := b.jewelryByCode[coded.Code()]
		if !ok {
			return 0, util.ErrJewelryNotFound
		}
		refs.Jewelry = b.jewelryItems[id]
	}

	valuation, err := req.Details.Valuate(refs)
	if err != nil {
		return 0, err
	}

	if _, ok := req.Details.(domain.ReceiveJewelryDetails); ok {
		refs.Jewelry.Status = domain.JewelryStatusConsignment
	}

	row := domain.NewTransaction(req.CustomerID, req.Details.Type(), valuation, req.Notes)
	b.nextTransactionID++
	row.ID = b.nextTransactionID
	b.transactions = append(b.transactions, *row)

	return row.ID, nil
}

// GetBalance returns a customer's derived balance.
func (b *Backend) GetBalance(ctx context.Context, accountID int64) (domain.Balance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balanceLocked(accountID)
}

func (b *Backend) balanceLocked(accountID int64) (domain.Balance, error) {
	customer, ok := b.customers[accountID]
	if !ok {
		return domain.Balance{}, util.ErrCustomerNotFound
	}
	money, gold := domain.SumDeltas(b.rowsForLocked(accountID))
	return domain.Balance{
		Money:     customer.InitialMoneyBalance.Add(money),
		GoldGrams: customer.InitialGoldBalanceGrams.Add(gold),
	}, nil
}

// ListAccounts returns account holders filtered by category, with derived
// balances, ordered by ID.
func (b *Backend) ListAccounts(ctx context.Context, category domain.AccountCategory) ([]accounting.Account, error) {
	if category != domain.CategoryAll && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown account category %q", util.ErrInvalidPayload, category)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	accounts := []accounting.Account{}
	for _, customer := range b.sortedCustomersLocked() {
		if category != domain.CategoryAll && customer.Category != category {
			continue
		}
		balance, err := b.balanceLocked(customer.ID)
		if err != nil {
			return nil, err
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
func (b *Backend) GoldPrice(ctx context.Context) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goldPricePerGram, nil
}

// SetGoldPrice updates the reference price.
func (b *Backend) SetGoldPrice(ctx context.Context, pricePerGram decimal.Decimal) error {
	if pricePerGram.Sign() <= 0 {
		return fmt.Errorf("%w: gold price must be positive", util.ErrInvalidPayload)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.goldPricePerGram = pricePerGram
	return nil
}

// Transactions returns a customer's ledger rows, oldest first.
func (b *Backend) Transactions(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.customers[customerID]; !ok {
		return nil, util.ErrCustomerNotFound
	}
	return b.rowsForLocked(customerID), nil
}

// RawGoldBalanceByPurity returns the customer's net raw-gold position.
func (b *Backend) RawGoldBalanceByPurity(ctx context.Context, customerID int64) ([]domain.PurityBucket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.customers[customerID]; !ok {
		return nil, util.ErrCustomerNotFound
	}
	buckets := domain.RawGoldByPurity(b.rowsForLocked(customerID))
	if buckets == nil {
		buckets = []domain.PurityBucket{}
	}
	return buckets, nil
}

// JewelryBalance derives custody status per referenced jewelry item.
func (b *Backend) JewelryBalance(ctx context.Context, customerID int64) ([]domain.JewelryBalance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.customers[customerID]; !ok {
		return nil, util.ErrCustomerNotFound
	}
	itemIDs, nets := domain.JewelryNetByItem(b.rowsForLocked(customerID))
	balances := []domain.JewelryBalance{}
	for _, id := range itemIDs {
		code := strconv.FormatInt(id, 10)
		if item, ok := b.jewelryItems[id]; ok {
			code = item.JewelryCode
		}
		balances = append(balances, domain.JewelryBalance{
			JewelryCode: code,
			Status:      domain.CustodyStatusOf(nets[id]),
		})
	}
	return balances, nil
}

// CreateCustomer stores a new account holder and assigns its ID.
func (b *Backend) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.FullName == "" {
		return fmt.Errorf("%w: customer full name is required", util.ErrInvalidPayload)
	}
	if !customer.Category.Valid() {
		customer.Category = domain.CategoryCustomer
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextCustomerID++
	customer.ID = b.nextCustomerID
	stored := *customer
	b.customers[customer.ID] = &stored
	return nil
}

// GetCustomer retrieves one customer record.
func (b *Backend) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	customer, ok := b.customers[id]
	if !ok {
		return nil, util.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

// ListCustomers retrieves all customer records ordered by ID.
func (b *Backend) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	customers := []domain.Customer{}
	for _, customer := range b.sortedCustomersLocked() {
		customers = append(customers, *customer)
	}
	return customers, nil
}

// CreateBankAccount stores a new bank account and assigns its ID.
func (b *Backend) CreateBankAccount(ctx context.Context, account *domain.BankAccount) error {
	if account.AccountName == "" {
		return fmt.Errorf("%w: bank account name is required", util.ErrInvalidPayload)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextBankAccountID++
	account.ID = b.nextBankAccountID
	stored := *account
	b.bankAccounts[account.ID] = &stored
	return nil
}

// ListBankAccounts retrieves all bank accounts ordered by ID.
func (b *Backend) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, 0, len(b.bankAccounts))
	for id := range b.bankAccounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	accounts := []domain.BankAccount{}
	for _, id := range ids {
		accounts = append(accounts, *b.bankAccounts[id])
	}
	return accounts, nil
}

// BankAccountBalance derives the net money held in one bank account.
func (b *Backend) BankAccountBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.bankAccounts[accountID]; !ok {
		return decimal.Zero, util.ErrBankAccountNotFound
	}
	sum := decimal.Zero
	for _, row := range b.transactions {
		if row.BankAccountID != nil && *row.BankAccountID == accountID {
			sum = sum.Add(row.MoneyAmount)
		}
	}
	return sum, nil
}

// CreateJewelryItem catalogues a new jewelry unit and assigns its ID.
func (b *Backend) CreateJewelryItem(ctx context.Context, item *domain.JewelryItem) error {
	if item.JewelryCode == "" {
		item.JewelryCode = "JW-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if item.Status == "" {
		item.Status = domain.JewelryStatusInStock
	}
	if item.WeightGrams.Sign() <= 0 || item.Purity.Sign() <= 0 || item.Purity.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: jewelry weight must be positive and purity in (0, 1]", util.ErrInvalidPayload)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.jewelryByCode[item.JewelryCode]; exists {
		return fmt.Errorf("%w: jewelry code %q already exists", util.ErrInvalidPayload, item.JewelryCode)
	}
	b.nextJewelryID++
	item.ID = b.nextJewelryID
	stored := *item
	b.jewelryItems[item.ID] = &stored
	b.jewelryByCode[item.JewelryCode] = item.ID
	return nil
}

// ListJewelryItems retrieves all jewelry items ordered by ID.
func (b *Backend) ListJewelryItems(ctx context.Context) ([]domain.JewelryItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, 0, len(b.jewelryItems))
	for id := range b.jewelryItems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := []domain.JewelryItem{}
	for _, id := range ids {
		items = append(items, *b.jewelryItems[id])
	}
	return items, nil
}

// CreateStandardItem catalogues a new standard item and assigns its ID.
func (b *Backend) CreateStandardItem(ctx context.Context, item *domain.StandardItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: standard item name is required", util.ErrInvalidPayload)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextStandardID++
	item.ID = b.nextStandardID
	stored := *item
	b.standardItems[item.ID] = &stored
	return nil
}

// ListStandardItems retrieves all standard items ordered by ID.
func (b *Backend) ListStandardItems(ctx context.Context) ([]domain.StandardItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, 0, len(b.standardItems))
	for id := range b.standardItems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := []domain.StandardItem{}
	for _, id := range ids {
		items = append(items, *b.standardItems[id])
	}
	return items, nil
}

// rowsForLocked returns the customer's rows in append order. The slice is
// append-only, so append order is time order.
func (b *Backend) rowsForLocked(customerID int64) []domain.Transaction {
	rows := []domain.Transaction{}
	for _, row := range b.transactions {
		if row.CustomerID == customerID {
			rows = append(rows, row)
		}
	}
	return rows
}

func (b *Backend) sortedCustomersLocked() []*domain.Customer {
	ids := make([]int64, 0, len(b.customers))
	for id := range b.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	customers := make([]*domain.Customer, 0, len(ids))
	for _, id := range ids {
		customers = append(customers, b.customers[id])
	}
	return customers
}

// RowCount reports the total number of ledger rows, used by tests to assert
// rejected events leave the ledger untouched.
func (b *Backend) RowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.transactions)
}
