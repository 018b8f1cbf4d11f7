// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gold-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(ledgerHandler *handler.LedgerHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", ledgerHandler.CreateCustomer)
		r.Get("/", ledgerHandler.ListCustomers)
		r.Get("/{customerID}", ledgerHandler.GetCustomer)
		r.Get("/{customerID}/transactions", ledgerHandler.GetCustomerTransactions)
		r.Get("/{customerID}/balance/raw-gold-by-purity", ledgerHandler.GetRawGoldBalanceByPurity)
		r.Get("/{customerID}/balance/jewelry", ledgerHandler.GetJewelryBalance)
	})

	r.Route("/bank-accounts", func(r chi.Router) {
		r.Post("/", ledgerHandler.CreateBankAccount)
		r.Get("/", ledgerHandler.ListBankAccounts)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/jewelry", ledgerHandler.CreateJewelryItem)
		r.Get("/jewelry", ledgerHandler.ListJewelryItems)
		r.Post("/standard", ledgerHandler.CreateStandardItem)
		r.Get("/standard", ledgerHandler.ListStandardItems)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", ledgerHandler.ListAccounts)
		r.Get("/{customerID}/balance", ledgerHandler.GetAccountBalance)
	})

	r.Post("/transactions", ledgerHandler.ExecuteTransaction)

	r.Get("/gold-price", ledgerHandler.GetGoldPrice)
	r.Put("/gold-price", ledgerHandler.UpdateGoldPrice)

	return r
}
