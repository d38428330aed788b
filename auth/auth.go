// Package auth wraps the hosted authentication service behind a small
// interface used by the HTTP layer.
package auth

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUserExists       = errors.New("user already registered")
	ErrWeakPassword     = errors.New("password should be at least 6 characters")
	ErrUnknownProvider  = errors.New("unknown oauth provider")
	ErrOAuthUnavailable = errors.New("oauth sign-in is not available")
)

// MinPasswordLength matches the hosted service's default policy.
const MinPasswordLength = 6

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Session is a signed-in user and the bearer token that identifies them.
// AccessToken is empty after a sign-up that still needs email confirmation.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	User         User   `json:"user"`
}

type Provider interface {
	SignUp(ctx context.Context, email, password, fullName string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// OAuthURL returns the URL the browser should visit to sign in with provider.
	OAuthURL(ctx context.Context, provider string) (string, error)
	SignOut(ctx context.Context, token string) error
	// User resolves a bearer token, or fails with ErrUnauthorized.
	User(ctx context.Context, token string) (*User, error)
}

type ctxKey struct{}

// WithUser stores the signed-in user in ctx.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the user stored by WithUser.
func UserFrom(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok && u != nil
}
