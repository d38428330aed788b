// Package anonchat is a demo of anonymous, ephemeral chat: throwaway
// identities, messages held in session memory, and a shared presence table.
// Nothing in it is a security property.
package anonchat

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mrand "math/rand/v2"
	"time"

	"comics/models"
)

var (
	adjectives = []string{"Mysterious", "Shadow", "Phantom", "Ghost", "Veiled", "Hidden", "Secret", "Unknown"}
	nouns      = []string{"Traveler", "Wanderer", "Observer", "Seeker", "Explorer", "Voyager", "Pilgrim", "Nomad"}
)

// NewPseudonym returns a name like "ShadowNomad#0427".
func NewPseudonym() string {
	return fmt.Sprintf("%s%s#%04d",
		adjectives[mrand.IntN(len(adjectives))],
		nouns[mrand.IntN(len(nouns))],
		mrand.IntN(9999))
}

// GenerateIdentity creates a fresh key pair. The address is the base64
// public key.
func GenerateIdentity(now time.Time) (models.AnonymousIdentity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return models.AnonymousIdentity{}, fmt.Errorf("generate key pair: %w", err)
	}
	pk := base64.StdEncoding.EncodeToString(pub)
	return models.AnonymousIdentity{
		Address:    pk,
		PublicKey:  pk,
		PrivateKey: base64.StdEncoding.EncodeToString(priv),
		Pseudonym:  NewPseudonym(),
		CreatedAt:  now,
	}, nil
}

// Reputation is a placeholder score in [0, 100).
func Reputation(string) int {
	return mrand.IntN(100)
}
