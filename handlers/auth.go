package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"comics/auth"
	"comics/middleware"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OAuthResponse struct {
	URL string `json:"url"`
}

func (h *Handler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sess, err := h.Auth.SignUp(r.Context(), req.Email, req.Password, strings.TrimSpace(req.FullName))
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, sess)
	case errors.Is(err, auth.ErrUserExists):
		writeError(w, http.StatusConflict, auth.ErrUserExists.Error())
	case errors.Is(err, auth.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, auth.ErrWeakPassword.Error())
	default:
		h.Log.Error("sign up failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "sign up failed")
	}
}

func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.Auth.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUnauthorized) {
			h.Log.Error("sign in failed", zap.Error(err))
		}
		writeError(w, http.StatusUnauthorized, "Invalid login credentials")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) OAuthHandler(w http.ResponseWriter, r *http.Request) {
	url, err := h.Auth.OAuthURL(r.Context(), r.PathValue("provider"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, OAuthResponse{URL: url})
	case errors.Is(err, auth.ErrUnknownProvider):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrOAuthUnavailable):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		h.Log.Error("oauth url failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "oauth sign-in failed")
	}
}

func (h *Handler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.Auth.SignOut(r.Context(), token); err != nil && !errors.Is(err, auth.ErrUnauthorized) {
		h.Log.Warn("sign out failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionHandler returns the signed-in user.
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}
