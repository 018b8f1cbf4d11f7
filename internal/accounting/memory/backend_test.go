// internal/accounting/memory/backend_test.go
package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestBackend(t *testing.T) (*Backend, int64, int64) {
	t.Helper()
	b := NewBackend(dec("10000000"))
	ctx := context.Background()

	customer := domain.NewCustomer("Customer Rezaei", nil, domain.CategoryCustomer, decimal.Zero, decimal.Zero)
	require.NoError(t, b.CreateCustomer(ctx, customer))

	bank := domain.NewBankAccount("Main Bank")
	require.NoError(t, b.CreateBankAccount(ctx, bank))

	return b, customer.ID, bank.ID
}

func execute(t *testing.T, b *Backend, customerID int64, details domain.TransactionDetails) accounting.Result {
	t.Helper()
	result := b.ExecuteTransaction(context.Background(), accounting.TransactionRequest{
		CustomerID: customerID,
		Details:    details,
	})
	require.Equal(t, accounting.StatusSuccess, result.Status, "unexpected failure: %s", result.Message)
	return result
}

func TestRunningBalanceScenario(t *testing.T) {
	b, customerID, bankID := newTestBackend(t)
	ctx := context.Background()

	// Customer sells 30g of 0.999 raw gold for 290M.
	execute(t, b, customerID, domain.SellRawGoldDetails{
		Purity: dec("0.999"), WeightGrams: dec("30"), Price: dec("290000000"),
	})

	balance, err := b.GetBalance(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, balance.Money.Equal(dec("290000000")), "money = %s", balance.Money)
	assert.True(t, balance.GoldGrams.Equal(dec("-30")), "gold = %s", balance.GoldGrams)

	// The business pays 100M out; no separate debt row exists or is needed,
	// the remaining 190M is just the fold over the two rows.
	execute(t, b, customerID, domain.SendMoneyDetails{
		Amount: dec("100000000"), BankAccountID: bankID,
	})

	balance, err = b.GetBalance(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, balance.Money.Equal(dec("190000000")), "money = %s", balance.Money)
	assert.True(t, balance.GoldGrams.Equal(dec("-30")), "gold = %s", balance.GoldGrams)

	bankBalance, err := b.BankAccountBalance(ctx, bankID)
	require.NoError(t, err)
	assert.True(t, bankBalance.Equal(dec("-100000000")))

	assert.Equal(t, 2, b.RowCount())
}

func TestInitialBalancesAreTheBaseline(t *testing.T) {
	b := NewBackend(dec("10000000"))
	ctx := context.Background()

	customer := domain.NewCustomer("Collaborator Saeedi", nil, domain.CategoryCollaborator, dec("80000000"), dec("8"))
	require.NoError(t, b.CreateCustomer(ctx, customer))

	execute(t, b, customer.ID, domain.ReceiveRawGoldDetails{WeightGrams: dec("2"), Purity: dec("0.900")})

	balance, err := b.GetBalance(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, balance.Money.Equal(dec("80000000")))
	assert.True(t, balance.GoldGrams.Equal(dec("10")))
}

func TestJewelryConsignmentSettles(t *testing.T) {
	b, customerID, _ := newTestBackend(t)
	ctx := context.Background()

	ring := domain.NewJewelryItem("RING-001", "Plain band", dec("5.5"), dec("0.750"), dec("2000000"))
	require.NoError(t, b.CreateJewelryItem(ctx, ring))

	execute(t, b, customerID, domain.ReceiveJewelryDetails{JewelryCode: "RING-001"})

	// Receipt moved weight*purity = 4.125g and marked the catalog record.
	balance, err := b.GetBalance(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, balance.GoldGrams.Equal(dec("4.125")))

	items, err := b.ListJewelryItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.JewelryStatusConsignment, items[0].Status)

	custody, err := b.JewelryBalance(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, custody, 1)
	assert.Equal(t, domain.CustodyHeldByUs, custody[0].Status)

	// Handing it back with unchanged catalog weight/purity nets to zero.
	execute(t, b, customerID, domain.GiveJewelryDetails{JewelryCode: "RING-001"})

	custody, err = b.JewelryBalance(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, custody, 1)
	assert.Equal(t, "RING-001", custody[0].JewelryCode)
	assert.Equal(t, domain.CustodySettled, custody[0].Status)
}

func TestPurityBucketsAreNeverNetted(t *testing.T) {
	b, customerID, _ := newTestBackend(t)
	ctx := context.Background()

	execute(t, b, customerID, domain.ReceiveRawGoldDetails{WeightGrams: dec("10"), Purity: dec("0.999")})
	execute(t, b, customerID, domain.GiveRawGoldDetails{WeightGrams: dec("5"), Purity: dec("0.750")})

	buckets, err := b.RawGoldBalanceByPurity(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, buckets, 2, "different purities must not collapse into one net value")
	assert.True(t, buckets[0].Purity.Equal(dec("0.999")))
	assert.True(t, buckets[0].NetGoldGrams.Equal(dec("10")))
	assert.True(t, buckets[1].Purity.Equal(dec("0.750")))
	assert.True(t, buckets[1].NetGoldGrams.Equal(dec("-5")))
}

func TestRejectedEventsLeaveLedgerUntouched(t *testing.T) {
	b, customerID, bankID := newTestBackend(t)
	ctx := context.Background()

	execute(t, b, customerID, domain.ReceiveMoneyDetails{Amount: dec("50"), BankAccountID: bankID})
	before, err := b.GetBalance(ctx, customerID)
	require.NoError(t, err)

	t.Run("unknown bank account", func(t *testing.T) {
		result := b.ExecuteTransaction(ctx, accounting.TransactionRequest{
			CustomerID: customerID,
			Details:    domain.SendMoneyDetails{Amount: dec("10"), BankAccountID: 999},
		})
		assert.Equal(t, accounting.StatusError, result.Status)
		assert.Contains(t, result.Message, "bank account not found")
	})

	t.Run("unknown customer", func(t *testing.T) {
		result := b.ExecuteTransaction(ctx, accounting.TransactionRequest{
			CustomerID: 999,
			Details:    domain.ReceiveMoneyDetails{Amount: dec("10"), BankAccountID: bankID},
		})
		assert.Equal(t, accounting.StatusError, result.Status)
	})

	t.Run("unknown jewelry code", func(t *testing.T) {
		result := b.ExecuteTransaction(ctx, accounting.TransactionRequest{
			CustomerID: customerID,
			Details:    domain.ReceiveJewelryDetails{JewelryCode: "NOPE"},
		})
		assert.Equal(t, accounting.StatusError, result.Status)
	})

	t.Run("invalid payload", func(t *testing.T) {
		result := b.ExecuteTransaction(ctx, accounting.TransactionRequest{
			CustomerID: customerID,
			Details:    domain.SellRawGoldDetails{}, // everything missing
		})
		assert.Equal(t, accounting.StatusError, result.Status)
	})

	after, err := b.GetBalance(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, before.Money.Equal(after.Money))
	assert.True(t, before.GoldGrams.Equal(after.GoldGrams))
	assert.Equal(t, 1, b.RowCount(), "rejected events must not append rows")
}

func TestListAccountsFiltersByCategory(t *testing.T) {
	b := NewBackend(dec("10000000"))
	ctx := context.Background()

	require.NoError(t, b.CreateCustomer(ctx, domain.NewCustomer("Customer Rezaei", nil, domain.CategoryCustomer, decimal.Zero, decimal.Zero)))
	require.NoError(t, b.CreateCustomer(ctx, domain.NewCustomer("Collaborator Akbari", nil, domain.CategoryCollaborator, decimal.Zero, dec("-5"))))

	customers, err := b.ListAccounts(ctx, domain.CategoryCustomer)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Customer Rezaei", customers[0].Name)

	collaborators, err := b.ListAccounts(ctx, domain.CategoryCollaborator)
	require.NoError(t, err)
	require.Len(t, collaborators, 1)
	assert.True(t, collaborators[0].Balance.GoldGrams.Equal(dec("-5")))

	all, err := b.ListAccounts(ctx, domain.CategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = b.ListAccounts(ctx, domain.AccountCategory("supplier"))
	assert.Error(t, err)
}

func TestTransactionsOrderedOldestFirst(t *testing.T) {
	b, customerID, bankID := newTestBackend(t)
	ctx := context.Background()

	execute(t, b, customerID, domain.ReceiveMoneyDetails{Amount: dec("1"), BankAccountID: bankID})
	execute(t, b, customerID, domain.ReceiveMoneyDetails{Amount: dec("2"), BankAccountID: bankID})
	execute(t, b, customerID, domain.ReceiveMoneyDetails{Amount: dec("3"), BankAccountID: bankID})

	rows, err := b.Transactions(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.True(t, rows[i].MoneyAmount.Equal(dec(want)))
		if i > 0 {
			assert.Less(t, rows[i-1].ID, rows[i].ID)
		}
	}
}

func TestGoldPricePassthrough(t *testing.T) {
	b := NewBackend(dec("10000000"))
	ctx := context.Background()

	price, err := b.GoldPrice(ctx)
	require.NoError(t, err)
	assert.True(t, price.Equal(dec("10000000")))

	require.NoError(t, b.SetGoldPrice(ctx, dec("12000000")))
	price, err = b.GoldPrice(ctx)
	require.NoError(t, err)
	assert.True(t, price.Equal(dec("12000000")))

	assert.Error(t, b.SetGoldPrice(ctx, decimal.Zero))
}

func TestGeneratedJewelryCode(t *testing.T) {
	b := NewBackend(dec("10000000"))
	ctx := context.Background()

	item := domain.NewJewelryItem("", "Unlabelled pendant", dec("3"), dec("0.900"), decimal.Zero)
	require.NoError(t, b.CreateJewelryItem(ctx, item))
	assert.NotEmpty(t, item.JewelryCode)
	assert.Contains(t, item.JewelryCode, "JW-")
}
