// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/domain"
	"gold-ledger/internal/util"
)

// ExecuteTransactionRequest is the JSON envelope for one business event. The
// details shape depends on the declared transaction type.
type ExecuteTransactionRequest struct {
	CustomerID      int64                  `json:"customer_id"`
	TransactionType domain.TransactionType `json:"transaction_type"`
	Details         json.RawMessage        `json:"details"`
	Notes           *string                `json:"notes"`
}

// ExecuteTransaction handles POST /transactions.
func (h *LedgerHandler) ExecuteTransaction(w http.ResponseWriter, r *http.Request) {
	var req ExecuteTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}

	details, err := domain.ParseDetails(req.TransactionType, req.Details)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	result := h.backend.ExecuteTransaction(r.Context(), accounting.TransactionRequest{
		CustomerID: req.CustomerID,
		Details:    details,
		Notes:      req.Notes,
	})

	// The backend reports failures inside the result, not as errors; the
	// body always carries the status and reason.
	code := http.StatusCreated
	if result.Status != accounting.StatusSuccess {
		code = http.StatusUnprocessableEntity
	}
	h.respondWithJSON(w, code, result)
}

// ListAccounts handles GET /accounts?category=customer|collaborator|all.
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	category := domain.AccountCategory(r.URL.Query().Get("category"))
	if category == "" {
		category = domain.CategoryAll
	}
	accounts, err := h.backend.ListAccounts(r.Context(), category)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, accounts)
}

// GetAccountBalance handles GET /accounts/{customerID}/balance.
func (h *LedgerHandler) GetAccountBalance(w http.ResponseWriter, r *http.Request) {
	customerID, err := h.customerID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	balance, err := h.backend.GetBalance(r.Context(), customerID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, balance)
}

// GoldPriceResponse carries the reference gold price.
type GoldPriceResponse struct {
	PricePerGram decimal.Decimal `json:"price_per_gram"`
}

// GetGoldPrice handles GET /gold-price.
func (h *LedgerHandler) GetGoldPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.backend.GoldPrice(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, GoldPriceResponse{PricePerGram: price})
}

// UpdateGoldPrice handles PUT /gold-price; the price is fed by an external
// source, this endpoint only stores the latest value.
func (h *LedgerHandler) UpdateGoldPrice(w http.ResponseWriter, r *http.Request) {
	var req GoldPriceResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}
	if err := h.prices.SetGoldPrice(r.Context(), req.PricePerGram); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, req)
}
