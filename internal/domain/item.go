// internal/domain/item.go
package domain

import (
	"github.com/shopspring/decimal"
)

// Jewelry status labels. These are a mutable side-channel on the catalog
// record, distinct from the custody status derived from the ledger.
const (
	JewelryStatusInStock     = "In Stock"
	JewelryStatusConsignment = "In Stock (Consignment)"
)

// JewelryItem is a catalogued jewelry unit. Weight and purity are captured
// when the unit is catalogued; transactions referencing the item snapshot the
// current weight*purity into their own delta, so later catalog edits never
// rewrite history.
type JewelryItem struct {
	ID          int64           `db:"jewelry_id" json:"jewelry_id"`
	JewelryCode string          `db:"jewelry_code" json:"jewelry_code"`
	Name        string          `db:"name" json:"name"`
	WeightGrams decimal.Decimal `db:"weight_grams" json:"weight_grams"`
	Purity      decimal.Decimal `db:"purity" json:"purity"`
	Premium     decimal.Decimal `db:"premium" json:"premium"`
	Status      string          `db:"status" json:"status"`
}

// PureGoldGrams returns the fine-gold content of the item as catalogued right
// now: weight_grams * purity.
func (j *JewelryItem) PureGoldGrams() decimal.Decimal {
	return j.WeightGrams.Mul(j.Purity)
}

// NewJewelryItem creates a new JewelryItem in stock.
func NewJewelryItem(code, name string, weightGrams, purity, premium decimal.Decimal) *JewelryItem {
	return &JewelryItem{
		JewelryCode: code,
		Name:        name,
		WeightGrams: weightGrams,
		Purity:      purity,
		Premium:     premium,
		Status:      JewelryStatusInStock,
	}
}

// StandardItem is inventory metadata only; no transaction type references it.
type StandardItem struct {
	ID          int64           `db:"item_id" json:"item_id"`
	Name        string          `db:"name" json:"name"`
	WeightGrams decimal.Decimal `db:"weight_grams" json:"weight_grams"`
	Purity      decimal.Decimal `db:"purity" json:"purity"`
}

// NewStandardItem creates a new StandardItem instance.
func NewStandardItem(name string, weightGrams, purity decimal.Decimal) *StandardItem {
	return &StandardItem{Name: name, WeightGrams: weightGrams, Purity: purity}
}
