// The auth gate: bearer-token validation for protected routes.

package server

import (
	"net/http"
	"strings"

	"github.com/imitatus/imitatus/pkg/api"
)

// authedHandler is a protected handler that receives the resolved user ID.
type authedHandler func(w http.ResponseWriter, r *http.Request, userID string)

// requireAuth wraps a protected handler with bearer token validation.
// Unauthenticated requests are rejected with 401 before the handler runs;
// route counters still record the attempt (incremented in middleware).
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		next(w, r, userID)
	}
}

// authenticate resolves the bearer token on a request. On failure it
// writes the 401 response and returns false.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		writeError(w, http.StatusUnauthorized, api.CodeMissingToken, "No token provided")
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		writeError(w, http.StatusUnauthorized, api.CodeInvalidToken, "Authorization scheme must be Bearer")
		return "", false
	}

	token := auth[len(prefix):]
	userID, ok := s.sessions.Validate(token)
	if !ok {
		s.log.Debug("rejected unknown token", "path", r.URL.Path)
		writeError(w, http.StatusUnauthorized, api.CodeInvalidToken, "Invalid token")
		return "", false
	}
	return userID, true
}

// bearerToken extracts the raw bearer token from a request, or "".
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return auth[len(prefix):]
}
