package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type HistoryMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []HistoryMessage `json:"messages"`
	Total     int64            `json:"total"`
	HasMore   bool             `json:"has_more"`
}

func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessionID := q.Get("session_id")
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	// Set defaults
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	s, ok := h.assistantSession(w, r, sessionID)
	if !ok {
		return
	}
	if h.Transcript == nil {
		writeJSON(w, http.StatusOK, HistoryResponse{SessionID: s.ID, Messages: []HistoryMessage{}})
		return
	}

	turns, total, err := h.Transcript.History(r.Context(), s.ID, limit, offset)
	if err != nil {
		h.Log.Error("history lookup failed", zap.String("session", s.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	messages := make([]HistoryMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, HistoryMessage{Role: t.Role, Content: t.Content, Timestamp: t.Timestamp})
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		SessionID: s.ID,
		Messages:  messages,
		Total:     total,
		HasMore:   int64(offset+limit) < total,
	})
}
