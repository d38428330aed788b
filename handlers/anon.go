package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comics/anonchat"
	"comics/models"
)

type AnonConnectRequest struct {
	// SessionID reconnects an existing chat session with a fresh identity.
	SessionID string `json:"session_id,omitempty"`
}

type AnonConnectResponse struct {
	SessionID string                   `json:"session_id"`
	Identity  models.AnonymousIdentity `json:"identity"`
	Online    []models.OnlineUser      `json:"online"`
}

type AnonSendRequest struct {
	SessionID        string `json:"session_id"`
	Receiver         string `json:"receiver"`
	Content          string `json:"content"`
	Ephemeral        bool   `json:"ephemeral"`
	BurnAfterRead    bool   `json:"burn_after_read"`
	ExpiresInSeconds int    `json:"expires_in_seconds,omitempty"`
}

type AnonBurnRequest struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
}

type AnonPseudonymRequest struct {
	SessionID string `json:"session_id"`
	Pseudonym string `json:"pseudonym"`
}

type AnonSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) AnonConnectHandler(w http.ResponseWriter, r *http.Request) {
	var req AnonConnectRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	var s *anonchat.Session
	if req.SessionID != "" {
		var ok bool
		if s, ok = h.anonSession(w, r, req.SessionID); !ok {
			return
		}
	} else {
		s = anonchat.NewSession(uuid.NewString(), h.Blobs, h.Presence, h.Clock, h.Log.Named("anonchat"))
		s.Owner = currentUser(r).ID
	}

	id, err := s.Connect(r.Context())
	if err != nil {
		h.Log.Error("anonymous connect failed", zap.String("session", s.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to connect")
		return
	}
	if req.SessionID == "" {
		h.Anon.Add(s)
	}
	writeJSON(w, http.StatusOK, AnonConnectResponse{SessionID: s.ID, Identity: id, Online: s.OnlineUsers()})
}

func (h *Handler) AnonSendHandler(w http.ResponseWriter, r *http.Request) {
	var req AnonSendRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.anonSession(w, r, req.SessionID)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Content) == "" || req.Receiver == "" {
		writeError(w, http.StatusBadRequest, "receiver and content are required")
		return
	}

	msg, err := s.Send(r.Context(), req.Receiver, req.Content, anonchat.SendOptions{
		Ephemeral:     req.Ephemeral,
		BurnAfterRead: req.BurnAfterRead,
		ExpiresIn:     time.Duration(req.ExpiresInSeconds) * time.Second,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, msg)
	case errors.Is(err, anonchat.ErrNoIdentity):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("anonymous send failed", zap.String("session", s.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to send message")
	}
}

func (h *Handler) AnonMessagesHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.anonSession(w, r, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	msgs := s.Messages()
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *Handler) AnonBurnHandler(w http.ResponseWriter, r *http.Request) {
	var req AnonBurnRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.anonSession(w, r, req.SessionID)
	if !ok {
		return
	}
	if !s.Burn(req.MessageID) {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AnonPseudonymHandler(w http.ResponseWriter, r *http.Request) {
	var req AnonPseudonymRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.anonSession(w, r, req.SessionID)
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Pseudonym)
	if name == "" {
		writeError(w, http.StatusBadRequest, "pseudonym is required")
		return
	}

	err := s.UpdatePseudonym(r.Context(), name)
	switch {
	case err == nil:
		id, _ := s.Identity()
		writeJSON(w, http.StatusOK, id)
	case errors.Is(err, anonchat.ErrNoIdentity):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("pseudonym update failed", zap.String("session", s.ID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to update pseudonym")
	}
}

func (h *Handler) AnonOnlineHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.anonSession(w, r, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	if err := s.RefreshOnline(r.Context()); err != nil {
		h.Log.Warn("presence refresh failed", zap.String("session", s.ID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"online": s.OnlineUsers()})
}

func (h *Handler) AnonReputationHandler(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"address": address, "reputation": anonchat.Reputation(address)})
}

func (h *Handler) AnonDisconnectHandler(w http.ResponseWriter, r *http.Request) {
	var req AnonSessionRequest
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.anonSession(w, r, req.SessionID)
	if !ok {
		return
	}
	h.Anon.Remove(s.ID)
	if err := s.Disconnect(r.Context()); err != nil {
		h.Log.Warn("disconnect failed", zap.String("session", s.ID), zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnonRecordHandler reads a stored message back from the blob store by its
// content id.
func (h *Handler) AnonRecordHandler(w http.ResponseWriter, r *http.Request) {
	rec, err := anonchat.ReadRecord(r.Context(), h.Blobs, r.PathValue("cid"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, anonchat.ErrBlobNotFound):
		writeError(w, http.StatusNotFound, "Message not found")
	case errors.Is(err, anonchat.ErrMalformedEnvelope):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("message lookup failed", zap.String("cid", r.PathValue("cid")), zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to load message")
	}
}

// anonSession finds a session owned by the signed-in user. Sessions of other
// users look the same as missing ones.
func (h *Handler) anonSession(w http.ResponseWriter, r *http.Request, id string) (*anonchat.Session, bool) {
	s, ok := h.Anon.Get(id)
	if !ok || s.Owner != currentUser(r).ID {
		writeError(w, http.StatusNotFound, "Chat session not found")
		return nil, false
	}
	return s, true
}
