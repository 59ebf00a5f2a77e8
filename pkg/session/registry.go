// Package session maps issued bearer tokens to the authenticated
// principal. Tokens are opaque random strings valid for the lifetime of
// the process unless explicitly revoked; the registry is in-memory only
// and empties on restart.
package session

import (
	"sync"
	"time"

	"github.com/imitatus/imitatus/internal/id"
)

// Session records an issued token with its principal and issue time.
type Session struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// Registry is a thread-safe in-memory token registry.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tokens: make(map[string]Session),
	}
}

// Issue generates a new opaque token for the given user and records it.
func (r *Registry) Issue(userID string) (string, error) {
	token, err := id.Token()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = Session{
		Token:    token,
		UserID:   userID,
		IssuedAt: time.Now(),
	}
	return token, nil
}

// Validate resolves a token to its user ID. The second return value is
// false when the token is unknown.
func (r *Registry) Validate(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.tokens[token]
	if !ok {
		return "", false
	}
	return sess.UserID, true
}

// Revoke removes a token. Returns true if the token existed.
func (r *Registry) Revoke(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return false
	}
	delete(r.tokens, token)
	return true
}

// Count returns the number of active tokens.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
