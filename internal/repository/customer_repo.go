// internal/repository/customer_repo.go
package repository

import (
	"context"

	"gold-ledger/internal/domain"
)

// CustomerRepository defines the interface for customer data operations.
type CustomerRepository interface {
	// CreateCustomer adds a new customer using the provided DBExecutor.
	CreateCustomer(ctx context.Context, q DBExecutor, customer *domain.Customer) error
	// GetCustomerByID retrieves a customer by ID using the provided DBExecutor.
	GetCustomerByID(ctx context.Context, q DBExecutor, id int64) (*domain.Customer, error)
	// ListCustomers retrieves all customers ordered by ID.
	ListCustomers(ctx context.Context, q DBExecutor) ([]domain.Customer, error)
}
