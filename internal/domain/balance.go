// internal/domain/balance.go
package domain

import (
	"github.com/shopspring/decimal"
)

// Balance is a derived money/gold position. It is never stored.
type Balance struct {
	Money     decimal.Decimal `json:"money"`
	GoldGrams decimal.Decimal `json:"gold_grams"`
}

// PurityBucket is the net raw-gold movement at one distinct purity.
type PurityBucket struct {
	Purity       decimal.Decimal `db:"purity" json:"purity"`
	NetGoldGrams decimal.Decimal `db:"net_gold_grams" json:"net_gold_grams"`
}

// CustodyStatus is the derived consignment state of a jewelry item, a pure
// function of the net gold moved for that item. It is independent of the
// catalog record's own status label.
type CustodyStatus string

const (
	CustodyHeldByUs     CustodyStatus = "held_by_us"
	CustodyWithCustomer CustodyStatus = "with_customer"
	CustodySettled      CustodyStatus = "settled"
)

// CustodyStatusOf maps a net gold delta to a custody status. Exactly zero
// means settled, not held or outstanding.
func CustodyStatusOf(netGoldGrams decimal.Decimal) CustodyStatus {
	switch netGoldGrams.Sign() {
	case 1:
		return CustodyHeldByUs
	case -1:
		return CustodyWithCustomer
	default:
		return CustodySettled
	}
}

// JewelryBalance reports custody of one jewelry item for one customer.
type JewelryBalance struct {
	JewelryCode string        `json:"jewelry_code"`
	Status      CustodyStatus `json:"status"`
}

// SumDeltas replays rows into net money and gold deltas. Projection helpers
// like this one are the whole balance model: no cached field, just a fold
// over the ledger.
func SumDeltas(rows []Transaction) (money, gold decimal.Decimal) {
	for _, row := range rows {
		money = money.Add(row.MoneyAmount)
		gold = gold.Add(row.GoldAmountGrams)
	}
	return money, gold
}

// RawGoldByPurity groups the raw-gold rows by purity, one bucket per distinct
// purity value. Buckets are matched by numeric equality so 0.75 and 0.750
// land together, and appear in first-seen order.
func RawGoldByPurity(rows []Transaction) []PurityBucket {
	var buckets []PurityBucket
	for _, row := range rows {
		if !isRawGold(row.TransactionType) || !row.Purity.Valid {
			continue
		}
		found := false
		for i := range buckets {
			if buckets[i].Purity.Equal(row.Purity.Decimal) {
				buckets[i].NetGoldGrams = buckets[i].NetGoldGrams.Add(row.GoldAmountGrams)
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, PurityBucket{
				Purity:       row.Purity.Decimal,
				NetGoldGrams: row.GoldAmountGrams,
			})
		}
	}
	return buckets
}

// JewelryNetByItem sums jewelry-row gold deltas per referenced item, in
// first-seen order.
func JewelryNetByItem(rows []Transaction) (itemIDs []int64, nets map[int64]decimal.Decimal) {
	nets = make(map[int64]decimal.Decimal)
	for _, row := range rows {
		if !isJewelry(row.TransactionType) || row.ItemID == nil {
			continue
		}
		id := *row.ItemID
		if _, ok := nets[id]; !ok {
			itemIDs = append(itemIDs, id)
		}
		nets[id] = nets[id].Add(row.GoldAmountGrams)
	}
	return itemIDs, nets
}

func isRawGold(t TransactionType) bool {
	for _, rt := range RawGoldTypes {
		if t == rt {
			return true
		}
	}
	return false
}

func isJewelry(t TransactionType) bool {
	for _, jt := range JewelryTypes {
		if t == jt {
			return true
		}
	}
	return false
}
