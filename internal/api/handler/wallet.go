// internal/api/handler/wallet.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mood-wallet/internal/api/types"
	"mood-wallet/internal/service"
)

// WalletHandler handles HTTP requests related to the wallet ledger.
type WalletHandler struct {
	responder
	service service.WalletService
	loc     *time.Location
}

// NewWalletHandler creates a new WalletHandler. Entry times are rendered in loc.
func NewWalletHandler(svc service.WalletService, loc *time.Location, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		responder: responder{logger: logger},
		service:   svc,
		loc:       loc,
	}
}

// Get handles the wallet request: balance plus recent history.
// GET /api/wallet?limit=n (n is capped at service.MaxRecentLimit)
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0 // Service default
	}
	limit = min(limit, service.MaxRecentLimit)

	statement, err := h.service.Statement(r.Context(), userID, limit)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	recent := make([]types.LedgerEntry, 0, len(statement.Recent))
	for _, e := range statement.Recent {
		recent = append(recent, types.LedgerEntry{
			Time:    e.CreatedAt.In(h.loc).Format(time.RFC3339),
			Delta:   e.Delta,
			Reason:  e.Reason,
			Balance: e.RunningTotal,
		})
	}

	h.respondWithJSON(w, http.StatusOK, types.WalletResponse{
		Balance: statement.Balance,
		Recent:  recent,
	})
}
