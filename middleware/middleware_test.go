package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comics/auth"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:5173", "https://comics.example"},
		ParseOrigins(" http://localhost:5173 , https://comics.example/ ,,"))
	assert.Empty(t, ParseOrigins(""))
}

func TestEnableCORS(t *testing.T) {
	testCases := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "wildcard when unconfigured", origin: "http://anywhere", want: "*"},
		{name: "listed origin echoed", allowed: []string{"http://localhost:5173"}, origin: "http://localhost:5173", want: "http://localhost:5173"},
		{name: "unlisted origin gets nothing", allowed: []string{"http://localhost:5173"}, origin: "http://evil", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()

			EnableCORS(tc.allowed, http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/stories", nil)
	rec := httptest.NewRecorder()
	EnableCORS(nil, http.HandlerFunc(okHandler)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSession(t *testing.T) {
	provider := auth.NewMemory()
	sess, err := provider.SignUp(context.Background(), "reader@example.com", "secret-pw", "")
	require.NoError(t, err)

	var seen *auth.User
	h := RequireSession(provider, zap.NewNop(), func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + sess.AccessToken, want: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/stories", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, "reader@example.com", seen.Email)
}
