package tokens

import (
	"crypto/rand"
	"encoding/hex"
)

const secretBytes = 40

// NewSecret mints an opaque, unguessable hex string. Used for both
// email verification tokens and session refresh secrets.
func NewSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
