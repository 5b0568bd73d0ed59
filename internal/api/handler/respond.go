// internal/api/handler/respond.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"mood-wallet/internal/api/auth"
	"mood-wallet/internal/api/types"
	"mood-wallet/internal/util"
)

// DefaultTimeout bounds the handling of a single request.
const DefaultTimeout = 15 * time.Second

// responder holds the JSON reply helpers shared by every handler.
type responder struct {
	logger *slog.Logger
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
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

// Helper function to send error responses.
func (h responder) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "unauthorized"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = util.Reason(err)
	case util.IsError(err, util.ErrConflict):
		statusCode = http.StatusConflict
		message = util.Reason(err)
	case util.IsError(err, util.ErrInvalidState):
		statusCode = http.StatusBadRequest
		message = util.Reason(err)
	case util.IsError(err, util.ErrTransientStore), util.IsError(err, context.DeadlineExceeded):
		statusCode = http.StatusServiceUnavailable
		message = "temporarily unavailable, please retry"
		h.logger.Warn("Transient store failure", "error", err)
	case util.IsError(err, util.ErrLedgerIntegrity):
		h.logger.Error("Ledger integrity violation", "error", err)
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// userID returns the authenticated user, replying 401 when there is none.
func (h responder) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondWithError(w, util.ErrUnauthorized)
	}
	return userID, ok
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return util.ErrInvalidInput
	}
	return nil
}
