// Route registration and the route table.

package server

import (
	"net/http"
	"strings"
)

// allMethods is the full verb set echoed in CORS discovery responses.
const allMethods = "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS, TRACE, CONNECT"

// allowedHeaders is the permissive header set echoed in CORS discovery
// responses. Echoed only; no policy is enforced.
const allowedHeaders = "Content-Type, Authorization, X-Requested-With"

// Supported methods per fixed path, in Allow-header order. 405 responses
// and OPTIONS discovery derive their Allow headers from these tables
// instead of hand-maintained strings.
var (
	loginMethods      = []string{http.MethodPost}
	logoutMethods     = []string{http.MethodPost}
	itemsMethods      = []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions, http.MethodTrace}
	itemDetailMethods = []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	varsMethods       = []string{http.MethodGet}
	healthMethods     = []string{http.MethodGet}
)

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/items", s.requireAuth(s.handleListItems))
	mux.HandleFunc("HEAD /api/items", s.requireAuth(s.handleHeadItems))
	mux.HandleFunc("POST /api/items", s.requireAuth(s.handleCreateItem))
	mux.HandleFunc("TRACE /api/items", s.requireAuth(s.handleTrace))
	mux.HandleFunc("OPTIONS /api/items", s.handleOptions(itemsMethods))

	mux.HandleFunc("GET /api/items/{id}", s.requireAuth(s.handleGetItem))
	mux.HandleFunc("PUT /api/items/{id}", s.requireAuth(s.handleReplaceItem))
	mux.HandleFunc("PATCH /api/items/{id}", s.requireAuth(s.handlePatchItem))
	mux.HandleFunc("DELETE /api/items/{id}", s.requireAuth(s.handleDeleteItem))
	mux.HandleFunc("OPTIONS /api/items/{id}", s.handleOptions(itemDetailMethods))

	mux.HandleFunc("GET /debug/vars", s.requireAuth(s.handleVars))
	mux.HandleFunc("GET /health", s.handleHealth)

	// Method-less patterns match any verb at lower precedence than the
	// method patterns above: an unsupported verb on a known path lands
	// here and produces 405 with the path's Allow set.
	mux.HandleFunc("/api/login", s.methodNotAllowed(loginMethods))
	mux.HandleFunc("/api/logout", s.methodNotAllowed(logoutMethods))
	mux.HandleFunc("/api/items", s.methodNotAllowed(itemsMethods))
	mux.HandleFunc("/api/items/{id}", s.methodNotAllowed(itemDetailMethods))
	mux.HandleFunc("/debug/vars", s.methodNotAllowed(varsMethods))
	mux.HandleFunc("/health", s.methodNotAllowed(healthMethods))

	mux.HandleFunc("/", s.handleNotFound)
}

// routePattern normalizes a request path to its route table key so the
// counter map stays bounded: item IDs collapse to one key and paths
// outside the route table collapse to "<other>".
func routePattern(path string) string {
	switch path {
	case "":
		// CONNECT requests carry no path.
		return "*"
	case "/api/login", "/api/logout", "/api/items", "/debug/vars", "/health":
		return path
	}
	if strings.HasPrefix(path, "/api/items/") && len(path) > len("/api/items/") {
		return "/api/items/{id}"
	}
	return "<other>"
}

func allowHeader(methods []string) string {
	return strings.Join(methods, ", ")
}
