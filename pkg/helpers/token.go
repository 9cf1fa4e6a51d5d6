package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// NewResetToken generates a random password-reset token. 32 bytes of entropy,
// hex-encoded.
func NewResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
