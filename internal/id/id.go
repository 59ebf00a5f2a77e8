// Package id provides token and identifier generation utilities.
// This is the canonical source for ID generation across the codebase.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// TokenBytes is the number of random bytes in a session token.
// 32 bytes (64 hex characters) is enough entropy to make tokens unguessable.
const TokenBytes = 32

// Token generates a cryptographically random opaque token.
func Token() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// UserID generates a new random user identifier.
func UserID() string {
	return uuid.NewString()
}
