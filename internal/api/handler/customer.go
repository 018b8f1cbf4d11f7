// internal/api/handler/customer.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/util"
)

// CreateCustomerRequest represents the request body for creating a customer.
type CreateCustomerRequest struct {
	FullName                string                 `json:"full_name"`
	PhoneNumber             *string                `json:"phone_number"`
	Category                domain.AccountCategory `json:"category"`
	InitialMoneyBalance     decimal.Decimal        `json:"initial_money_balance"`
	InitialGoldBalanceGrams decimal.Decimal        `json:"initial_gold_balance_grams"`
}

// CustomerResponse is a customer record with its derived balances.
type CustomerResponse struct {
	domain.Customer
	MoneyBalance     decimal.Decimal `json:"money_balance"`
	GoldBalanceGrams decimal.Decimal `json:"gold_balance_grams"`
}

func (h *LedgerHandler) customerResponse(r *http.Request, customer domain.Customer) (CustomerResponse, error) {
	balance, err := h.backend.GetBalance(r.Context(), customer.ID)
	if err != nil {
		return CustomerResponse{}, err
	}
	return CustomerResponse{
		Customer:         customer,
		MoneyBalance:     balance.Money,
		GoldBalanceGrams: balance.GoldGrams,
	}, nil
}

// CreateCustomer handles POST /customers.
func (h *LedgerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}
	customer := domain.NewCustomer(req.FullName, req.PhoneNumber, req.Category, req.InitialMoneyBalance, req.InitialGoldBalanceGrams)
	if err := h.entities.CreateCustomer(r.Context(), customer); err != nil {
		h.respondWithError(w, err)
		return
	}
	resp, err := h.customerResponse(r, *customer)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, resp)
}

// ListCustomers handles GET /customers.
func (h *LedgerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.entities.ListCustomers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	responses := []CustomerResponse{}
	for _, customer := range customers {
		resp, err := h.customerResponse(r, customer)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		responses = append(responses, resp)
	}
	h.respondWithJSON(w, http.StatusOK, responses)
}

// GetCustomer handles GET /customers/{customerID}.
func (h *LedgerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := h.customerID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	customer, err := h.entities.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	resp, err := h.customerResponse(r, *customer)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

// GetCustomerTransactions handles GET /customers/{customerID}/transactions.
func (h *LedgerHandler) GetCustomerTransactions(w http.ResponseWriter, r *http.Request) {
	customerID, err := h.customerID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	transactions, err := h.backend.Transactions(r.Context(), customerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, transactions)
}

// GetRawGoldBalanceByPurity handles GET /customers/{customerID}/balance/raw-gold-by-purity.
func (h *LedgerHandler) GetRawGoldBalanceByPurity(w http.ResponseWriter, r *http.Request) {
	customerID, err := h.customerID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	buckets, err := h.backend.RawGoldBalanceByPurity(r.Context(), customerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, buckets)
}

// GetJewelryBalance handles GET /customers/{customerID}/balance/jewelry.
func (h *LedgerHandler) GetJewelryBalance(w http.ResponseWriter, r *http.Request) {
	customerID, err := h.customerID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	balances, err := h.backend.JewelryBalance(r.Context(), customerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, balances)
}

func (h *LedgerHandler) customerID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		return 0, util.ErrInvalidPayload
	}
	return id, nil
}
