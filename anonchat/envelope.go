package anonchat

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrMalformedEnvelope = errors.New("malformed envelope")

// Encode packs content for a receiver as base64("content|receiver"). It is an
// encoding, not encryption: anyone can Decode it.
func Encode(content, receiver string) string {
	return base64.StdEncoding.EncodeToString([]byte(content + "|" + receiver))
}

// Decode reverses Encode. Content may itself contain '|'; the receiver may not.
func Decode(encoded string) (content, receiver string, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", errors.Join(ErrMalformedEnvelope, err)
	}
	s := string(raw)
	i := strings.LastIndexByte(s, '|')
	if i < 0 {
		return "", "", ErrMalformedEnvelope
	}
	return s[:i], s[i+1:], nil
}
