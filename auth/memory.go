package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Memory keeps accounts and tokens in process memory. Used when no Supabase
// project is configured and in tests.
type Memory struct {
	mu     sync.Mutex
	users  map[string]memoryAccount // by lowercased email
	tokens map[string]string        // access token -> email
}

type memoryAccount struct {
	user User
	hash []byte
}

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[string]memoryAccount),
		tokens: make(map[string]string),
	}
}

func (m *Memory) SignUp(_ context.Context, email, password, fullName string) (*Session, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	key := strings.ToLower(strings.TrimSpace(email))

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[key]; ok {
		return nil, ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct := memoryAccount{
		user: User{ID: uuid.NewString(), Email: key, FullName: fullName},
		hash: hash,
	}
	m.users[key] = acct
	return m.issue(acct.user), nil
}

func (m *Memory) SignIn(_ context.Context, email, password string) (*Session, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.users[key]
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	return m.issue(acct.user), nil
}

func (m *Memory) OAuthURL(context.Context, string) (string, error) {
	return "", ErrOAuthUnavailable
}

func (m *Memory) SignOut(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token]; !ok {
		return ErrUnauthorized
	}
	delete(m.tokens, token)
	return nil
}

func (m *Memory) User(_ context.Context, token string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.tokens[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	u := m.users[email].user
	return &u, nil
}

// issue must be called with m.mu held.
func (m *Memory) issue(u User) *Session {
	token := uuid.NewString()
	m.tokens[token] = u.Email
	return &Session{AccessToken: token, ExpiresIn: 3600, User: u}
}
