// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"gold-ledger/internal/accounting"
	"gold-ledger/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router middleware.
const DefaultTimeout = 15 * time.Second

// LedgerHandler handles HTTP requests for the ledger and its entity catalog.
// It holds only the accounting interfaces, never a storage type.
type LedgerHandler struct {
	backend  accounting.Backend
	entities accounting.EntityStore
	prices   accounting.PriceSetter
	logger   *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(backend accounting.Backend, entities accounting.EntityStore, prices accounting.PriceSetter, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		backend:  backend,
		entities: entities,
		prices:   prices,
		logger:   logger,
	}
}

// respondWithJSON sends a JSON response with the given status code.
func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps the error taxonomy to HTTP status codes.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidPayload):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrConflict):
		statusCode = http.StatusConflict
		message = "Storage conflict, retry the request"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}
