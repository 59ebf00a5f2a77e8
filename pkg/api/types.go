package api

// Error codes returned in the error envelope. Machine-readable and stable;
// the accompanying message is for humans and may change.
const (
	CodeValidation         = "validation_error"
	CodeInvalidJSON        = "invalid_json"
	CodeInvalidID          = "invalid_id"
	CodeMissingToken       = "missing_token"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCredentials = "invalid_credentials"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodePayloadTooLarge    = "payload_too_large"
	CodeConnectRejected    = "connect_rejected"
	CodeInternal           = "internal_error"
)

// ErrorDetail is the inner payload of the error envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope used by every error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ConnectResponse is the acknowledgment body for CONNECT requests.
// No tunnel is ever opened; the server only simulates acceptance.
type ConnectResponse struct {
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
	Status   string `json:"status"`
}
