// internal/domain/bank_account.go
package domain

// BankAccount is a money-holding bucket. Its balance is always derived by
// summing ledger rows that reference it; no balance field is stored.
type BankAccount struct {
	ID          int64  `db:"account_id" json:"account_id"`
	AccountName string `db:"account_name" json:"account_name"`
}

// NewBankAccount creates a new BankAccount instance.
func NewBankAccount(name string) *BankAccount {
	return &BankAccount{AccountName: name}
}
