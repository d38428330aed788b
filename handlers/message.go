package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"comics/assistant"
)

type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type MessageResponse struct {
	Reply string `json:"reply"`
}

// MessageHandler runs one question through the assistant. Identity
// deflections are shown as ordinary replies.
func (h *Handler) MessageHandler(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	s, ok := h.assistantSession(w, r, req.SessionID)
	if !ok {
		return
	}

	reply, err := h.Assistant.Ask(r.Context(), s, req.Message)
	if errors.Is(err, assistant.ErrDeflected) {
		reply, err = err.Error(), nil
	}
	if err != nil {
		h.Log.Error("assistant failed", zap.String("session", s.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get response")
		return
	}

	if h.Transcript != nil {
		if err := assistant.Record(r.Context(), h.Transcript, s, req.Message, reply, h.Clock.Now()); err != nil {
			h.Log.Warn("failed to save transcript", zap.String("session", s.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, MessageResponse{Reply: reply})
}
