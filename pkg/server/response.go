// Response helpers shared by all handlers.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/imitatus/imitatus/pkg/api"
)

// maxBodyBytes caps request bodies at 5 MiB.
const maxBodyBytes = 5 << 20

// writeJSON writes a JSON response. A nil body writes headers only, so
// callers for HEAD and 204 responses can reuse the same path.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}
	b, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// writeError writes the error envelope shared by every failure response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Error: api.ErrorDetail{Code: code, Message: message},
	})
}

// writeInternal logs the full error server-side and returns a sanitized
// message so internal state never leaks to the caller.
func (s *Server) writeInternal(w http.ResponseWriter, err error, operation string) {
	s.log.Error("operation failed", "operation", operation, "error", err)
	writeError(w, http.StatusInternalServerError, api.CodeInternal, "An internal error occurred")
}

// decodeJSONBody decodes the request body into dst, enforcing the size
// cap. On failure it writes the error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, api.CodePayloadTooLarge, "Request entity too large")
			return false
		}
		writeError(w, http.StatusBadRequest, api.CodeInvalidJSON, "Invalid JSON in request body")
		return false
	}
	return true
}
