// Package handlers exposes the catalog, reader, assistant and anonymous chat
// over JSON HTTP.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"comics/anonchat"
	"comics/assistant"
	"comics/auth"
	"comics/catalog"
	"comics/middleware"
	"comics/reading"
)

// Handler holds everything the routes need.
type Handler struct {
	Catalog    *catalog.Store
	Auth       auth.Provider
	Gate       *reading.Gate
	Assistant  *assistant.Router
	Transcript assistant.Transcript
	Anon       *anonchat.Sessions
	Blobs      anonchat.BlobStore
	Presence   anonchat.PresenceStore
	Clock      clock.Clock
	Log        *zap.Logger
}

// Routes registers every route on a new mux. All routes except /auth/* and
// the 404 fallback require a bearer token.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	gated := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireSession(h.Auth, h.Log, fn)
	}

	mux.HandleFunc("POST /auth/signup", h.SignUpHandler)
	mux.HandleFunc("POST /auth/signin", h.SignInHandler)
	mux.HandleFunc("GET /auth/oauth/{provider}", h.OAuthHandler)
	mux.HandleFunc("POST /auth/signout", h.SignOutHandler)
	mux.HandleFunc("GET /auth/session", gated(h.SessionHandler))

	mux.HandleFunc("GET /{$}", gated(h.FeedHandler))
	mux.HandleFunc("GET /stories", gated(h.StoriesHandler))
	mux.HandleFunc("GET /stories/{id}", gated(h.StoryDetailHandler))
	mux.HandleFunc("GET /characters", gated(h.CharactersHandler))
	mux.HandleFunc("GET /characters/{id}", gated(h.CharacterDetailHandler))
	mux.HandleFunc("GET /about", gated(h.AboutHandler))
	mux.HandleFunc("GET /read/{storyId}", gated(h.ReadHandler))

	mux.HandleFunc("POST /assistant/sessions", gated(h.SpawnSessionHandler))
	mux.HandleFunc("POST /assistant/message", gated(h.MessageHandler))
	mux.HandleFunc("GET /assistant/history", gated(h.HistoryHandler))

	mux.HandleFunc("POST /anon/connect", gated(h.AnonConnectHandler))
	mux.HandleFunc("POST /anon/messages", gated(h.AnonSendHandler))
	mux.HandleFunc("GET /anon/messages", gated(h.AnonMessagesHandler))
	mux.HandleFunc("POST /anon/burn", gated(h.AnonBurnHandler))
	mux.HandleFunc("POST /anon/pseudonym", gated(h.AnonPseudonymHandler))
	mux.HandleFunc("GET /anon/online", gated(h.AnonOnlineHandler))
	mux.HandleFunc("GET /anon/reputation", gated(h.AnonReputationHandler))
	mux.HandleFunc("POST /anon/disconnect", gated(h.AnonDisconnectHandler))
	mux.HandleFunc("GET /anon/blobs/{cid}", gated(h.AnonRecordHandler))

	mux.HandleFunc("/", NotFoundHandler)
	return mux
}

// NotFoundHandler answers every unknown path.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Page not found: "+r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return false
	}
	return true
}

func currentUser(r *http.Request) *auth.User {
	u, _ := auth.UserFrom(r.Context())
	return u
}
