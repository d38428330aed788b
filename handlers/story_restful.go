package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"comics/models"
	"comics/reading"
)

type ReadResponse struct {
	Story      models.Story `json:"story"`
	Paragraphs []string     `json:"paragraphs"`
	ReadCount  int          `json:"read_count"`
	Limit      int          `json:"limit"`
	Remaining  int          `json:"remaining"`
}

// StoryDetailHandler returns a story card. Content is only served through
// the reading gate.
func (h *Handler) StoryDetailHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Catalog.Get().Story(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Story not found")
		return
	}
	writeJSON(w, http.StatusOK, s.Card())
}

// ReadHandler opens a story for the signed-in user, counting it against the
// reading limit.
func (h *Handler) ReadHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	access, err := h.Gate.Open(r.Context(), user.ID, r.PathValue("storyId"))

	var limitErr *reading.LimitError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ReadResponse{
			Story:      access.Story,
			Paragraphs: access.Story.Paragraphs(),
			ReadCount:  access.ReadCount,
			Limit:      access.Limit,
			Remaining:  access.Remaining(),
		})
	case errors.As(err, &limitErr):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":      limitErr.Error(),
			"read_count": limitErr.Count,
			"limit":      limitErr.Limit,
		})
	case errors.Is(err, reading.ErrStoryNotFound):
		writeError(w, http.StatusNotFound, "No story found")
	default:
		h.Log.Error("open story failed", zap.String("user", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to open story")
	}
}
