// Introspection and capability-discovery handlers: HEAD, OPTIONS,
// TRACE, CONNECT, /debug/vars and /health.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/imitatus/imitatus/pkg/api"
	"github.com/imitatus/imitatus/pkg/requestlog"
)

// recentRequestCount is how many request log entries /debug/vars returns.
const recentRequestCount = 5

// varsResponse is the body of GET /debug/vars.
type varsResponse struct {
	Requests       map[string]int64    `json:"requests"`
	UptimeSeconds  int64               `json:"uptime_seconds"`
	ActiveTokens   int                 `json:"active_tokens"`
	ItemsCount     int                 `json:"items_count"`
	RecentRequests []*requestlog.Entry `json:"recent_requests"`
}

// handleHeadItems handles HEAD /api/items: the same auth and lookup as
// the list endpoint, but only headers go out. Content-Length reflects
// the body a GET would have produced.
func (s *Server) handleHeadItems(w http.ResponseWriter, r *http.Request, _ string) {
	body, err := json.Marshal(s.store.List())
	if err != nil {
		s.writeInternal(w, err, "encode item list")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
}

// handleOptions returns capability discovery for a path: the Allow set
// from the route table plus permissive CORS headers. No auth; discovery
// must work before login.
func (s *Server) handleOptions(methods []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowHeader(methods))
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", allMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleTrace handles TRACE /api/items: echoes the request line and
// headers back as message/http. This is a single hop, so Max-Forwards
// is decremented in the echo rather than forwarded anywhere.
func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request, _ string) {
	hdr := r.Header.Clone()
	if mf := hdr.Get("Max-Forwards"); mf != "" {
		if n, err := strconv.Atoi(mf); err == nil && n > 0 {
			hdr.Set("Max-Forwards", strconv.Itoa(n-1))
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s %s\r\n", r.Method, r.RequestURI, r.Proto)
	_ = hdr.Write(&b)
	b.WriteString("\r\n")

	w.Header().Set("Content-Type", "message/http")
	w.Header().Set("Content-Length", strconv.Itoa(b.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}

// handleConnect acknowledges CONNECT requests without ever opening a
// tunnel. Tunneling is unsupported: targets on port 443 get a simulated
// acknowledgment, everything else is rejected.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	target := r.Host
	if target == "" {
		target = r.URL.Host
	}
	if !strings.HasSuffix(target, ":443") {
		writeError(w, http.StatusBadRequest, api.CodeConnectRejected,
			"CONNECT is only acknowledged for port 443 targets")
		return
	}

	writeJSON(w, http.StatusOK, api.ConnectResponse{
		Message:  "CONNECT acknowledged; tunneling is simulated and no connection was opened",
		Endpoint: target,
		Status:   "simulated",
	})
}

// handleVars handles GET /debug/vars: a read-only snapshot of the
// process-wide counters and state for test assertions.
func (s *Server) handleVars(w http.ResponseWriter, r *http.Request, _ string) {
	writeJSON(w, http.StatusOK, varsResponse{
		Requests:       s.counters.Snapshot(),
		UptimeSeconds:  s.Uptime(),
		ActiveTokens:   s.sessions.Count(),
		ItemsCount:     s.store.Count(),
		RecentRequests: s.requests.Recent(recentRequestCount),
	})
}

// handleHealth handles GET /health. Unauthenticated liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:        "ok",
		UptimeSeconds: s.Uptime(),
	})
}

// handleNotFound is the fallback for paths outside the route table.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, api.CodeNotFound, "Endpoint not found")
}

// methodNotAllowed rejects unsupported verbs on a known path with the
// path's Allow set.
func (s *Server) methodNotAllowed(methods []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowHeader(methods))
		writeError(w, http.StatusMethodNotAllowed, api.CodeMethodNotAllowed,
			fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path))
	}
}
