package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewInviteToken generates a random one-time token for an invitation.
// The token goes out in the invitation email; only its hash is stored.
func NewInviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the hex SHA-256 digest stored in place of the token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
