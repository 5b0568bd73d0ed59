// internal/api/handler/journal.go
package handler

import (
	"log/slog"
	"net/http"

	"mood-wallet/internal/api/types"
	"mood-wallet/internal/domain"
	"mood-wallet/internal/service"
)

// JournalHandler handles diary and photo submissions.
type JournalHandler struct {
	responder
	service service.JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(svc service.JournalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// DiaryRequest represents the request body for a diary save. Omitted
// optional fields keep their stored values.
type DiaryRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
	Content     string  `json:"content"`
	Title       *string `json:"title"`
	Mood        *string `json:"mood"`
	MoodColor   *string `json:"mood_color"`
	WeatherIcon *string `json:"weather_icon"`
}

// SaveDiary creates or updates the caller's entry for a date.
// POST /api/diaries
func (h *JournalHandler) SaveDiary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req DiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	diary, created, err := h.service.SaveDiary(r.Context(), userID, domain.DiaryInput{
		Date:        req.Date,
		Content:     req.Content,
		Title:       req.Title,
		Mood:        req.Mood,
		MoodColor:   req.MoodColor,
		WeatherIcon: req.WeatherIcon,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	h.respondWithJSON(w, code, types.DiaryResponse{
		Success:   true,
		ID:        diary.ID,
		Label:     diary.Sentiment,
		AIMessage: diary.AIMessage,
		Updated:   !created,
	})
}

// PhotoRequest represents the request body for recording a photo.
type PhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// AddPhoto records an uploaded photo's metadata.
// POST /api/photos
func (h *JournalHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req PhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	photo, err := h.service.AddPhoto(r.Context(), userID, req.URL, req.Caption)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, photo)
}
