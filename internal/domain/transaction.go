// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the business event a ledger row records.
//
// The verbs are from the counterparty's point of view ("Sell Raw Gold" means
// the customer sells, so the business buys gold and pays money). The signed
// deltas on the row are always from the business's point of view: positive
// money or gold is an inflow to the business.
type TransactionType string

const (
	TypeSellRawGold    TransactionType = "Sell Raw Gold"
	TypeBuyRawGold     TransactionType = "Buy Raw Gold"
	TypeReceiveMoney   TransactionType = "Receive Money"
	TypeSendMoney      TransactionType = "Send Money"
	TypeReceiveRawGold TransactionType = "Receive Raw Gold"
	TypeGiveRawGold    TransactionType = "Give Raw Gold"
	TypeReceiveJewelry TransactionType = "Receive Jewelry"
	TypeGiveJewelry    TransactionType = "Give Jewelry"
)

// RawGoldTypes are the variants that move raw gold at a declared purity.
// Only these contribute to the by-purity position.
var RawGoldTypes = []TransactionType{
	TypeSellRawGold, TypeBuyRawGold, TypeReceiveRawGold, TypeGiveRawGold,
}

// JewelryTypes are the variants that move catalogued jewelry.
var JewelryTypes = []TransactionType{TypeReceiveJewelry, TypeGiveJewelry}

// Transaction is one immutable ledger row. Once appended it is never mutated
// or deleted; corrections are made by appending a compensating row.
//
// MoneyAmount and GoldAmountGrams are the authoritative signed deltas. Price,
// WeightGrams and Purity are an informational snapshot of the physical
// exchange and play no direct part in balance math.
type Transaction struct {
	ID              int64               `db:"transaction_id" json:"transaction_id"`
	CustomerID      int64               `db:"customer_id" json:"customer_id"`
	TransactionDate time.Time           `db:"transaction_date" json:"transaction_date"`
	TransactionType TransactionType     `db:"transaction_type" json:"transaction_type"`
	BankAccountID   *int64              `db:"bank_account_id" json:"bank_account_id,omitempty"`
	ItemID          *int64              `db:"item_id" json:"item_id,omitempty"`
	Price           decimal.NullDecimal `db:"price" json:"price,omitempty"`
	WeightGrams     decimal.NullDecimal `db:"weight_grams" json:"weight_grams,omitempty"`
	Purity          decimal.NullDecimal `db:"purity" json:"purity,omitempty"`
	MoneyAmount     decimal.Decimal     `db:"money_amount" json:"money_amount"`
	GoldAmountGrams decimal.Decimal     `db:"gold_amount_grams" json:"gold_amount_grams"`
	Notes           *string             `db:"notes" json:"notes,omitempty"`
}

// NewTransaction builds a ledger row for a customer from a computed valuation.
// The timestamp is assigned here, at append time.
func NewTransaction(customerID int64, txType TransactionType, v Valuation, notes *string) *Transaction {
	return &Transaction{
		CustomerID:      customerID,
		TransactionDate: time.Now().UTC(),
		TransactionType: txType,
		BankAccountID:   v.BankAccountID,
		ItemID:          v.ItemID,
		Price:           v.Price,
		WeightGrams:     v.WeightGrams,
		Purity:          v.Purity,
		MoneyAmount:     v.MoneyAmount,
		GoldAmountGrams: v.GoldAmountGrams,
		Notes:           notes,
	}
}
