package anonchat

import (
	"encoding/base64"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pseudonymPattern = regexp.MustCompile(`^(Mysterious|Shadow|Phantom|Ghost|Veiled|Hidden|Secret|Unknown)(Traveler|Wanderer|Observer|Seeker|Explorer|Voyager|Pilgrim|Nomad)#\d{4}$`)

func TestGenerateIdentity(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := GenerateIdentity(now)
	require.NoError(t, err)

	assert.Equal(t, id.PublicKey, id.Address)
	assert.Regexp(t, pseudonymPattern, id.Pseudonym)
	assert.Equal(t, now, id.CreatedAt)

	pub, err := base64.StdEncoding.DecodeString(id.PublicKey)
	require.NoError(t, err)
	assert.Len(t, pub, 32)
}

func TestPseudonymAlwaysMatchesWordLists(t *testing.T) {
	for range 200 {
		assert.Regexp(t, pseudonymPattern, NewPseudonym())
	}
}

func TestReputationRange(t *testing.T) {
	for range 100 {
		r := Reputation("addr")
		assert.GreaterOrEqual(t, r, 0)
		assert.Less(t, r, 100)
	}
}

func TestEnvelope(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		receiver string
	}{
		{name: "plain", content: "hello there", receiver: "abc"},
		{name: "content with pipe", content: "a|b|c", receiver: "xyz"},
		{name: "empty content", content: "", receiver: "r"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.content, tc.receiver)
			content, receiver, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.content, content)
			assert.Equal(t, tc.receiver, receiver)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, _, err := Decode("not base64!!")
	assert.ErrorIs(t, err, ErrMalformedEnvelope)

	_, _, err = Decode(base64.StdEncoding.EncodeToString([]byte("no separator")))
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}
