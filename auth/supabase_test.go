package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/supabase-community/gotrue-go/types"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want error
	}{
		{name: "existing user", err: errors.New("response status code 422: User already registered"), want: ErrUserExists},
		{name: "weak password", err: errors.New("Password should be at least 6 characters"), want: ErrWeakPassword},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.err), tc.want)
		})
	}

	other := errors.New("boom")
	assert.Same(t, other, classify(other))
}

func TestToUser(t *testing.T) {
	id := uuid.New()
	u := toUser(types.User{
		ID:           id,
		Email:        "reader@example.com",
		UserMetadata: map[string]interface{}{"full_name": "Reader"},
	})
	assert.Equal(t, User{ID: id.String(), Email: "reader@example.com", FullName: "Reader"}, u)
}

func TestSupabaseRejectsUnknownProvider(t *testing.T) {
	_, err := (&Supabase{}).OAuthURL(context.Background(), "myspace")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestOAuthProviders(t *testing.T) {
	testCases := []struct {
		name string
		want types.Provider
	}{
		{name: "github", want: types.ProviderGitHub},
		{name: "google", want: types.ProviderGoogle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, oauthProviders[tc.name])
			assert.EqualValues(t, tc.name, oauthProviders[tc.name])
		})
	}
}
