// Handlers for login, logout and the item CRUD endpoints.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/imitatus/imitatus/internal/id"
	"github.com/imitatus/imitatus/pkg/api"
	"github.com/imitatus/imitatus/pkg/store"
)

// handleLogin handles POST /api/login. The only public mutating
// endpoint: it checks the fixed credential pair and issues a session
// token on success.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, api.CodeValidation, "Missing required fields: username and password")
		return
	}

	if req.Username != s.creds.Username || req.Password != s.creds.Password {
		s.log.Warn("login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, api.CodeInvalidCredentials, "Invalid credentials")
		return
	}

	userID := id.UserID()
	token, err := s.sessions.Issue(userID)
	if err != nil {
		s.writeInternal(w, err, "issue session token")
		return
	}

	s.log.Info("session issued", "user_id", userID)
	writeJSON(w, http.StatusOK, api.LoginResponse{Token: token, UserID: userID})
}

// handleLogout handles POST /api/logout and revokes the presented token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, userID string) {
	s.sessions.Revoke(bearerToken(r))
	s.log.Info("session revoked", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// handleCreateItem handles POST /api/items.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request, _ string) {
	var p store.Payload
	if !decodeJSONBody(w, r, &p) {
		return
	}

	item, err := s.store.Create(p)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleListItems handles GET /api/items.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, s.store.List())
}

// handleGetItem handles GET /api/items/{id}.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request, _ string) {
	itemID, ok := s.itemID(w, r)
	if !ok {
		return
	}

	item, err := s.store.Get(itemID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleReplaceItem handles PUT /api/items/{id}: full replace with the
// same validation as create.
func (s *Server) handleReplaceItem(w http.ResponseWriter, r *http.Request, _ string) {
	itemID, ok := s.itemID(w, r)
	if !ok {
		return
	}

	var p store.Payload
	if !decodeJSONBody(w, r, &p) {
		return
	}

	item, err := s.store.Replace(itemID, p)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handlePatchItem handles PATCH /api/items/{id}: only supplied fields
// are overwritten.
func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request, _ string) {
	itemID, ok := s.itemID(w, r)
	if !ok {
		return
	}

	var p store.Payload
	if !decodeJSONBody(w, r, &p) {
		return
	}

	item, err := s.store.Patch(itemID, p)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /api/items/{id}.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request, _ string) {
	itemID, ok := s.itemID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(itemID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// itemID parses the {id} path segment. A non-numeric or non-positive id
// is a client error (400), not a missing resource (404).
func (s *Server) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, api.CodeInvalidID,
			fmt.Sprintf("Item id must be a positive integer, got %q", raw))
		return 0, false
	}
	return n, true
}

// writeStoreError maps store errors onto the wire envelope.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		writeError(w, verr.StatusCode(), api.CodeValidation, verr.Error())
		return
	}
	var nfe *store.NotFoundError
	if errors.As(err, &nfe) {
		writeError(w, nfe.StatusCode(), api.CodeNotFound, nfe.Error())
		return
	}
	s.writeInternal(w, err, "store operation")
}
