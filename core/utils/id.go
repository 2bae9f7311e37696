package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short public identifier.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateVoteToken returns a URL-safe capability token. 32 random bytes
// give 256 bits of entropy; the token is the sole credential for casting
// availability votes, so it must not be guessable.
func GenerateVoteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate vote token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
