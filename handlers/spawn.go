package handlers

import (
	"net/http"
	"time"

	"comics/assistant"
)

type SpawnResponse struct {
	SessionID string    `json:"session_id"`
	Greeting  string    `json:"greeting"`
	CreatedAt time.Time `json:"created_at"`
}

// SpawnSessionHandler starts an assistant conversation for the signed-in user.
func (h *Handler) SpawnSessionHandler(w http.ResponseWriter, r *http.Request) {
	s := assistant.SpawnSessionFor(currentUser(r).ID)
	writeJSON(w, http.StatusOK, SpawnResponse{
		SessionID: s.ID,
		Greeting:  assistant.Greeting,
		CreatedAt: s.CreatedAt,
	})
}

// assistantSession looks up a session owned by the current user.
func (h *Handler) assistantSession(w http.ResponseWriter, r *http.Request, id string) (*assistant.Session, bool) {
	s, ok := assistant.GetSession(id)
	if !ok || s.Owner != currentUser(r).ID {
		writeError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}
