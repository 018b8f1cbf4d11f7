// internal/domain/customer.go
package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account holder.
type AccountCategory string

const (
	CategoryCustomer     AccountCategory = "customer"
	CategoryCollaborator AccountCategory = "collaborator"
	CategoryAll          AccountCategory = "all" // query filter only, never stored
)

// Valid reports whether the category is one of the storable values.
func (c AccountCategory) Valid() bool {
	return c == CategoryCustomer || c == CategoryCollaborator
}

// Customer is an account holder in the ledger.
//
// The initial balances are the baseline as of account creation; everything
// after that is derived from ledger rows referencing this customer. Nothing
// in transaction processing ever writes back to this record.
type Customer struct {
	ID                      int64           `db:"customer_id" json:"customer_id"`
	FullName                string          `db:"full_name" json:"full_name"`
	PhoneNumber             *string         `db:"phone_number" json:"phone_number,omitempty"`
	Category                AccountCategory `db:"category" json:"category"`
	InitialMoneyBalance     decimal.Decimal `db:"initial_money_balance" json:"initial_money_balance"`
	InitialGoldBalanceGrams decimal.Decimal `db:"initial_gold_balance_grams" json:"initial_gold_balance_grams"`
}

// NewCustomer creates a new Customer with the given baseline balances.
func NewCustomer(fullName string, phone *string, category AccountCategory, initialMoney, initialGold decimal.Decimal) *Customer {
	if !category.Valid() {
		category = CategoryCustomer
	}
	return &Customer{
		FullName:                fullName,
		PhoneNumber:             phone,
		Category:                category,
		InitialMoneyBalance:     initialMoney,
		InitialGoldBalanceGrams: initialGold,
	}
}
