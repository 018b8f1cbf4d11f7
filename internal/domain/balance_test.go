// internal/domain/balance_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodyStatusOf(t *testing.T) {
	assert.Equal(t, CustodyHeldByUs, CustodyStatusOf(dec("4.125")))
	assert.Equal(t, CustodyWithCustomer, CustodyStatusOf(dec("-4.125")))
	// Exactly zero is settled, never held or outstanding.
	assert.Equal(t, CustodySettled, CustodyStatusOf(decimal.Zero))
	assert.Equal(t, CustodySettled, CustodyStatusOf(dec("4.125").Sub(dec("4.125"))))
}

func rawGoldRow(txType TransactionType, purity, gold string) Transaction {
	return Transaction{
		TransactionType: txType,
		Purity:          decimal.NewNullDecimal(dec(purity)),
		GoldAmountGrams: dec(gold),
	}
}

func TestRawGoldByPurity(t *testing.T) {
	t.Run("distinct purities stay in separate buckets", func(t *testing.T) {
		rows := []Transaction{
			rawGoldRow(TypeReceiveRawGold, "0.999", "10"),
			rawGoldRow(TypeGiveRawGold, "0.750", "-5"),
		}
		buckets := RawGoldByPurity(rows)
		require.Len(t, buckets, 2)
		assert.True(t, buckets[0].Purity.Equal(dec("0.999")))
		assert.True(t, buckets[0].NetGoldGrams.Equal(dec("10")))
		assert.True(t, buckets[1].Purity.Equal(dec("0.750")))
		assert.True(t, buckets[1].NetGoldGrams.Equal(dec("-5")))
	})

	t.Run("same purity nets within one bucket", func(t *testing.T) {
		rows := []Transaction{
			rawGoldRow(TypeSellRawGold, "0.999", "-30"),
			rawGoldRow(TypeBuyRawGold, "0.999", "12"),
		}
		buckets := RawGoldByPurity(rows)
		require.Len(t, buckets, 1)
		assert.True(t, buckets[0].NetGoldGrams.Equal(dec("-18")))
	})

	t.Run("equal purities with different scales share a bucket", func(t *testing.T) {
		rows := []Transaction{
			rawGoldRow(TypeReceiveRawGold, "0.75", "1"),
			rawGoldRow(TypeReceiveRawGold, "0.750", "2"),
		}
		buckets := RawGoldByPurity(rows)
		require.Len(t, buckets, 1)
		assert.True(t, buckets[0].NetGoldGrams.Equal(dec("3")))
	})

	t.Run("non raw-gold rows are ignored", func(t *testing.T) {
		itemID := int64(1)
		rows := []Transaction{
			{TransactionType: TypeReceiveJewelry, ItemID: &itemID, GoldAmountGrams: dec("4.125")},
			{TransactionType: TypeReceiveMoney, MoneyAmount: dec("100")},
		}
		assert.Empty(t, RawGoldByPurity(rows))
	})
}

func TestJewelryNetByItem(t *testing.T) {
	ring, necklace := int64(1), int64(2)
	rows := []Transaction{
		{TransactionType: TypeReceiveJewelry, ItemID: &ring, GoldAmountGrams: dec("4.125")},
		{TransactionType: TypeReceiveJewelry, ItemID: &necklace, GoldAmountGrams: dec("8")},
		{TransactionType: TypeGiveJewelry, ItemID: &ring, GoldAmountGrams: dec("-4.125")},
	}
	ids, nets := JewelryNetByItem(rows)
	require.Equal(t, []int64{ring, necklace}, ids)
	assert.True(t, nets[ring].IsZero())
	assert.True(t, nets[necklace].Equal(dec("8")))
}

// Projecting after N appends must equal summing the projections of each
// prefix increment: the fold has no memory beyond the rows themselves.
func TestSumDeltasIncrementalEquivalence(t *testing.T) {
	rows := []Transaction{
		{MoneyAmount: dec("290000000"), GoldAmountGrams: dec("-30")},
		{MoneyAmount: dec("-100000000"), GoldAmountGrams: dec("0")},
		{MoneyAmount: dec("0"), GoldAmountGrams: dec("12.5")},
	}

	batchMoney, batchGold := SumDeltas(rows)

	var incMoney, incGold decimal.Decimal
	for _, row := range rows {
		m, g := SumDeltas([]Transaction{row})
		incMoney = incMoney.Add(m)
		incGold = incGold.Add(g)
	}

	assert.True(t, batchMoney.Equal(incMoney))
	assert.True(t, batchGold.Equal(incGold))
	assert.True(t, batchMoney.Equal(dec("190000000")))
	assert.True(t, batchGold.Equal(dec("-17.5")))
}
