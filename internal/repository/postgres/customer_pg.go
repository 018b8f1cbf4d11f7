// internal/repository/postgres/customer_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/repository"
	"gold-ledger/internal/util"
)

// CustomerRepository implements repository.CustomerRepository for PostgreSQL.
type CustomerRepository struct{}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository() repository.CustomerRepository {
	return &CustomerRepository{}
}

// CreateCustomer inserts a new customer using the provided DBExecutor.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, q repository.DBExecutor, customer *domain.Customer) error {
	query := `INSERT INTO customers (full_name, phone_number, category, initial_money_balance, initial_gold_balance_grams)
              VALUES ($1, $2, $3, $4, $5) RETURNING customer_id`
	err := q.QueryRowContext(ctx, query,
		customer.FullName,
		customer.PhoneNumber,
		customer.Category,
		customer.InitialMoneyBalance,
		customer.InitialGoldBalanceGrams,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetCustomerByID retrieves a customer by ID using the provided DBExecutor.
func (r *CustomerRepository) GetCustomerByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	query := `SELECT customer_id, full_name, phone_number, category, initial_money_balance, initial_gold_balance_grams
              FROM customers WHERE customer_id = $1`
	err := q.GetContext(ctx, &customer, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// ListCustomers retrieves all customers ordered by ID.
func (r *CustomerRepository) ListCustomers(ctx context.Context, q repository.DBExecutor) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	query := `SELECT customer_id, full_name, phone_number, category, initial_money_balance, initial_gold_balance_grams
              FROM customers ORDER BY customer_id`
	if err := q.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
