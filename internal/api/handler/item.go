// internal/api/handler/item.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"gold-ledger/internal/domain"
	"gold-ledger/internal/util"
)

// CreateBankAccountRequest represents the request body for creating a bank account.
type CreateBankAccountRequest struct {
	AccountName string `json:"account_name"`
}

// BankAccountResponse is a bank account with its derived balance.
type BankAccountResponse struct {
	domain.BankAccount
	Balance decimal.Decimal `json:"balance"`
}

// CreateBankAccount handles POST /bank-accounts.
func (h *LedgerHandler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}
	account := domain.NewBankAccount(req.AccountName)
	if err := h.entities.CreateBankAccount(r.Context(), account); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, BankAccountResponse{BankAccount: *account, Balance: decimal.Zero})
}

// ListBankAccounts handles GET /bank-accounts.
func (h *LedgerHandler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.entities.ListBankAccounts(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	responses := []BankAccountResponse{}
	for _, account := range accounts {
		balance, err := h.entities.BankAccountBalance(r.Context(), account.ID)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		responses = append(responses, BankAccountResponse{BankAccount: account, Balance: balance})
	}
	h.respondWithJSON(w, http.StatusOK, responses)
}

// CreateJewelryItemRequest represents the request body for cataloguing jewelry.
type CreateJewelryItemRequest struct {
	JewelryCode string          `json:"jewelry_code"`
	Name        string          `json:"name"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Purity      decimal.Decimal `json:"purity"`
	Premium     decimal.Decimal `json:"premium"`
}

// CreateJewelryItem handles POST /items/jewelry.
func (h *LedgerHandler) CreateJewelryItem(w http.ResponseWriter, r *http.Request) {
	var req CreateJewelryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}
	item := domain.NewJewelryItem(req.JewelryCode, req.Name, req.WeightGrams, req.Purity, req.Premium)
	if err := h.entities.CreateJewelryItem(r.Context(), item); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, item)
}

// ListJewelryItems handles GET /items/jewelry.
func (h *LedgerHandler) ListJewelryItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.entities.ListJewelryItems(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, items)
}

// CreateStandardItemRequest represents the request body for cataloguing a standard item.
type CreateStandardItemRequest struct {
	Name        string          `json:"name"`
	WeightGrams decimal.Decimal `json:"weight_grams"`
	Purity      decimal.Decimal `json:"purity"`
}

// CreateStandardItem handles POST /items/standard.
func (h *LedgerHandler) CreateStandardItem(w http.ResponseWriter, r *http.Request) {
	var req CreateStandardItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidPayload)
		return
	}
	item := domain.NewStandardItem(req.Name, req.WeightGrams, req.Purity)
	if err := h.entities.CreateStandardItem(r.Context(), item); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, item)
}

// ListStandardItems handles GET /items/standard.
func (h *LedgerHandler) ListStandardItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.entities.ListStandardItems(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, items)
}
