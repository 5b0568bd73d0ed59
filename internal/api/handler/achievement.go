// internal/api/handler/achievement.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mood-wallet/internal/api/types"
	"mood-wallet/internal/service"
	"mood-wallet/internal/util"
)

// AchievementHandler handles achievement listing and claims.
type AchievementHandler struct {
	responder
	service service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(svc service.AchievementService, logger *slog.Logger) *AchievementHandler {
	return &AchievementHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// List returns every achievement with the caller's status.
// GET /api/achievements
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	items := make([]types.AchievementItem, 0, len(views))
	for _, v := range views {
		items = append(items, types.AchievementItem{
			ID:           v.ID,
			Title:        v.Title,
			Desc:         v.Description,
			Amount:       v.Reward,
			IsDaily:      v.IsDaily,
			Claimable:    v.Status.Claimable,
			ClaimedToday: v.Status.ClaimedToday,
			Unlocked:     v.Status.Unlocked,
		})
	}
	h.respondWithJSON(w, http.StatusOK, items)
}

// ClaimRequest represents the request body for a claim.
type ClaimRequest struct {
	ID string `json:"id"`
}

// Claim credits an achievement's reward.
// POST /api/achievements/claim
func (h *AchievementHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req ClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		h.respondWithError(w, fmt.Errorf("%w: achievement id is required", util.ErrInvalidInput))
		return
	}

	result, err := h.service.Claim(r.Context(), userID, req.ID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ClaimResponse{
		OK:      true,
		ID:      result.AchievementID,
		Amount:  result.Amount,
		Balance: result.Balance,
		Status: types.ClaimStatus{
			Claimable:    result.Status.Claimable,
			ClaimedToday: result.Status.ClaimedToday,
			Unlocked:     result.Status.Unlocked,
		},
	})
}
