package httpx

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"
)

// BasicCredentials is a decoded Authorization: Basic header pair.
type BasicCredentials struct {
	Username string
	Password string
}

// ErrMalformedBasicAuth covers every way an Authorization header can fail to
// yield a username/password pair. Callers must not distinguish the causes in
// their responses.
var ErrMalformedBasicAuth = errors.New("httpx: malformed basic authorization header")

// ParseBasicAuth extracts Basic credentials from the request. It is stricter
// than http.Request.BasicAuth: the decoded payload must be valid UTF-8 and
// both the username and password components must be present.
func ParseBasicAuth(r *http.Request) (BasicCredentials, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return BasicCredentials{}, ErrMalformedBasicAuth
	}

	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return BasicCredentials{}, ErrMalformedBasicAuth
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return BasicCredentials{}, ErrMalformedBasicAuth
	}
	if !utf8.Valid(decoded) {
		return BasicCredentials{}, ErrMalformedBasicAuth
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return BasicCredentials{}, ErrMalformedBasicAuth
	}

	return BasicCredentials{Username: username, Password: password}, nil
}
