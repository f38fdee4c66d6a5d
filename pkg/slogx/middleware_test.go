package slogx_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/pkg/slogx"
)

func serveWith(t *testing.T, requestID string) string {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := slogx.HTTPMiddleware(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	return buf.String()
}

func TestHTTPMiddlewareRequestID(t *testing.T) {
	t.Run("KeepsValidInboundID", func(t *testing.T) {
		out := serveWith(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
		require.Contains(t, out, "req_id=01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	})

	t.Run("ReplacesMalformedInboundID", func(t *testing.T) {
		out := serveWith(t, "spoofed junk\nwith=garbage")
		require.NotContains(t, out, "spoofed")
		require.Contains(t, out, "req_id=")
	})

	t.Run("MintsIDWhenAbsent", func(t *testing.T) {
		out := serveWith(t, "")
		require.Contains(t, out, "req_id=")
	})
}
