package auth

import (
	"context"
	"fmt"
	"strings"

	gotrue "github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"
)

var oauthProviders = map[string]types.Provider{
	"github": types.ProviderGitHub,
	"google": types.ProviderGoogle,
}

// Supabase authenticates against a Supabase project's auth API.
type Supabase struct {
	auth gotrue.Client
}

func NewSupabase(client *supa.Client) *Supabase {
	return &Supabase{auth: client.Auth}
}

func (s *Supabase) SignUp(_ context.Context, email, password, fullName string) (*Session, error) {
	req := types.SignupRequest{Email: email, Password: password}
	if fullName != "" {
		req.Data = map[string]interface{}{"full_name": fullName}
	}
	resp, err := s.auth.Signup(req)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", classify(err))
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         toUser(resp.User),
	}, nil
}

func (s *Supabase) SignIn(_ context.Context, email, password string) (*Session, error) {
	resp, err := s.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         toUser(resp.User),
	}, nil
}

func (s *Supabase) OAuthURL(_ context.Context, provider string) (string, error) {
	p, ok := oauthProviders[strings.ToLower(provider)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	resp, err := s.auth.Authorize(types.AuthorizeRequest{Provider: p})
	if err != nil {
		return "", fmt.Errorf("authorize %s: %w", provider, err)
	}
	return resp.AuthorizationURL, nil
}

func (s *Supabase) SignOut(_ context.Context, token string) error {
	if err := s.auth.WithToken(token).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (s *Supabase) User(_ context.Context, token string) (*User, error) {
	resp, err := s.auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	u := toUser(resp.User)
	return &u, nil
}

func toUser(u types.User) User {
	out := User{ID: u.ID.String(), Email: u.Email}
	if name, ok := u.UserMetadata["full_name"].(string); ok {
		out.FullName = name
	}
	return out
}

// classify maps the auth API's error text onto sentinel errors.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already registered"):
		return fmt.Errorf("%w: %v", ErrUserExists, err)
	case strings.Contains(msg, "password should be"):
		return fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}
	return err
}
