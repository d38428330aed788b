package models

import "time"

// AnonymousIdentity is a per-session throwaway identity for the anonymous chat
// demo. Keys are base64; Address equals PublicKey.
type AnonymousIdentity struct {
	Address    string    `json:"address"`
	PublicKey  string    `json:"public_key"`
	PrivateKey string    `json:"private_key"`
	Pseudonym  string    `json:"pseudonym"`
	Reputation int       `json:"reputation"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatMessage is held only in session memory.
type ChatMessage struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Sender        string     `json:"sender"`
	Receiver      string     `json:"receiver"`
	Timestamp     time.Time  `json:"timestamp"`
	IsEphemeral   bool       `json:"is_ephemeral"`
	IsBurned      bool       `json:"is_burned"`
	BurnAfterRead bool       `json:"burn_after_read"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	ContentID     string     `json:"content_id,omitempty"`
}

// Expired reports whether an ephemeral message is past its expiry at now.
func (m ChatMessage) Expired(now time.Time) bool {
	return m.IsEphemeral && m.ExpiresAt != nil && m.ExpiresAt.Before(now)
}

// Presence is a row of the anonymous presence table, keyed by public key.
type Presence struct {
	PublicKey string    `json:"public_key" bson:"public_key"`
	Pseudonym string    `json:"pseudonym" bson:"pseudonym"`
	LastSeen  time.Time `json:"last_seen" bson:"last_seen"`
	IsOnline  bool      `json:"is_online" bson:"is_online"`
}

// OnlineUser is the view of a presence row handed to clients.
type OnlineUser struct {
	Address    string    `json:"address"`
	Pseudonym  string    `json:"pseudonym"`
	Reputation int       `json:"reputation"`
	IsOnline   bool      `json:"is_online"`
	LastSeen   time.Time `json:"last_seen"`
}
