// internal/repository/postgres/transaction_pg_test.go
package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/util"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAppendTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository()
	ctx := context.Background()

	row := domain.NewTransaction(1, domain.TypeSellRawGold, domain.Valuation{
		MoneyAmount:     decimal.NewFromInt(290000000),
		GoldAmountGrams: decimal.NewFromInt(-30),
		Price:           decimal.NewNullDecimal(decimal.NewFromInt(290000000)),
		WeightGrams:     decimal.NewNullDecimal(decimal.NewFromInt(30)),
		Purity:          decimal.NewNullDecimal(decimal.RequireFromString("0.999")),
	}, nil)

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(int64(1), sqlmock.AnyArg(), string(domain.TypeSellRawGold), nil, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_id"}).AddRow(42))

	err := repo.AppendTransaction(ctx, db, row)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), row.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsByCustomerIDOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	cols := []string{"transaction_id", "customer_id", "transaction_date", "transaction_type",
		"bank_account_id", "item_id", "price", "weight_grams", "purity",
		"money_amount", "gold_amount_grams", "notes"}

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE customer_id = \\$1 ORDER BY transaction_date ASC, transaction_id ASC").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, now, string(domain.TypeSellRawGold), nil, nil, "290000000", "30", "0.999", "290000000", "-30", nil).
			AddRow(2, 1, now, string(domain.TypeSendMoney), 3, nil, nil, nil, nil, "-100000000", "0", nil))

	rows, err := repo.GetTransactionsByCustomerID(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TypeSellRawGold, rows[0].TransactionType)
	assert.True(t, rows[0].MoneyAmount.Equal(decimal.NewFromInt(290000000)))
	assert.True(t, rows[0].Purity.Valid)
	if assert.NotNil(t, rows[1].BankAccountID) {
		assert.Equal(t, int64(3), *rows[1].BankAccountID)
	}
	assert.False(t, rows[1].Purity.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumDeltasByCustomerID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository()
	ctx := context.Background()

	t.Run("WithRows", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(money_amount\\), 0\\)").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"money_sum", "gold_sum"}).AddRow("190000000", "-17.5"))

		money, gold, err := repo.SumDeltasByCustomerID(ctx, db, 1)
		require.NoError(t, err)
		assert.True(t, money.Equal(decimal.NewFromInt(190000000)))
		assert.True(t, gold.Equal(decimal.RequireFromString("-17.5")))
	})

	// COALESCE means a customer with no rows sums to zero, not to an error.
	t.Run("NoRows", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(money_amount\\), 0\\)").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"money_sum", "gold_sum"}).AddRow("0", "0"))

		money, gold, err := repo.SumDeltasByCustomerID(ctx, db, 2)
		require.NoError(t, err)
		assert.True(t, money.IsZero())
		assert.True(t, gold.IsZero())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawGoldByPurityGroups(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT purity, SUM\\(gold_amount_grams\\) AS net_gold_grams").
		WithArgs(int64(1),
			string(domain.TypeSellRawGold), string(domain.TypeBuyRawGold),
			string(domain.TypeReceiveRawGold), string(domain.TypeGiveRawGold)).
		WillReturnRows(sqlmock.NewRows([]string{"purity", "net_gold_grams"}).
			AddRow("0.750", "-5").
			AddRow("0.999", "10"))

	buckets, err := repo.RawGoldByPurity(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.True(t, buckets[0].Purity.Equal(decimal.RequireFromString("0.750")))
	assert.True(t, buckets[0].NetGoldGrams.Equal(decimal.NewFromInt(-5)))
	assert.True(t, buckets[1].Purity.Equal(decimal.RequireFromString("0.999")))
	assert.True(t, buckets[1].NetGoldGrams.Equal(decimal.NewFromInt(10)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJewelryNetByItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT item_id, SUM\\(gold_amount_grams\\) AS net_gold_grams").
		WithArgs(int64(1), string(domain.TypeReceiveJewelry), string(domain.TypeGiveJewelry)).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "net_gold_grams"}).
			AddRow(7, "0").
			AddRow(8, "4.125"))

	nets, err := repo.JewelryNetByItem(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, nets, 2)
	assert.Equal(t, int64(7), nets[0].ItemID)
	assert.True(t, nets[0].NetGoldGrams.IsZero())
	assert.True(t, nets[1].NetGoldGrams.Equal(decimal.RequireFromString("4.125")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCustomerRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE customer_id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

	_, err := repo.GetCustomerByID(ctx, db, 99)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJewelryItemByCodeNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewItemRepository()
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM jewelry_items WHERE jewelry_code = \\$1").
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"jewelry_id"}))

	_, err := repo.GetJewelryItemByCode(ctx, db, "NOPE")
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
