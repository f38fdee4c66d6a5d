package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paperwing/newsletter/pkg/httpx"
)

// APIError is the JSON error envelope every handler responds with.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidContentType is returned when the request body encoding does
	// not match what the endpoint accepts.
	ErrInvalidContentType = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "Unsupported content type for this endpoint",
	}

	// ErrInvalidFormBody is returned when a form body fails to parse.
	ErrInvalidFormBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "Malformed form body",
	}

	// ErrInvalidJSONBody is returned when a JSON body fails to decode.
	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "Malformed JSON body",
	}

	// ErrMissingToken is returned when the confirmation endpoint is called
	// without a subscription_token query parameter.
	ErrMissingToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "Missing subscription_token query parameter",
	}

	// ErrUnauthorized is returned for session failures on the admin surface.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Authentication required",
	}

	// ErrUnexpected hides internal failure detail from the caller. The cause
	// is logged server-side with its full chain.
	ErrUnexpected = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "unexpected_error",
		Description: "Something went wrong",
	}
)

// validationError echoes a safe validation message back to the submitter.
func validationError(message string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "validation_error",
		Description: message,
	}
}

// publishRealm is the Basic auth realm challenged on the publish endpoint.
const publishRealm = "publish_newsletter"

// writeBasicChallenge rejects the request with a Basic auth challenge. The
// response is identical for missing headers, malformed headers, unknown
// usernames, and wrong passwords.
func writeBasicChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", publishRealm))
	(&APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Authentication failed",
	}).WriteError(w)
}
