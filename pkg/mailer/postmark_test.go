package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/pkg/mailer"
)

func newStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newMailer(t *testing.T, baseURL string, timeout time.Duration) mailer.Mailer {
	t.Helper()
	m, err := mailer.NewPostmark(mailer.Config{
		ServerToken: "test-server-token",
		SenderEmail: "newsletter@example.com",
		BaseURL:     baseURL,
		Timeout:     timeout,
	})
	require.NoError(t, err)
	return m
}

func TestNewPostmark_InvalidConfig(t *testing.T) {
	t.Run("missing server token", func(t *testing.T) {
		_, err := mailer.NewPostmark(mailer.Config{SenderEmail: "a@b.com"})
		require.ErrorIs(t, err, mailer.ErrInvalidConfig)
	})

	t.Run("missing sender", func(t *testing.T) {
		_, err := mailer.NewPostmark(mailer.Config{ServerToken: "tok"})
		require.ErrorIs(t, err, mailer.ErrInvalidConfig)
	})
}

func TestSend_PostsExpectedRequest(t *testing.T) {
	var got struct {
		From     string `json:"From"`
		To       string `json:"To"`
		Subject  string `json:"Subject"`
		HTMLBody string `json:"HtmlBody"`
		TextBody string `json:"TextBody"`
	}
	var gotToken, gotPath, gotMethod string

	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK"}`))
	})

	m := newMailer(t, srv.URL, time.Second)

	err := m.Send(context.Background(), mailer.Email{
		To:       "ursula_le_guin@gmail.com",
		Subject:  "Welcome!",
		HTMLBody: "<p>Welcome to our newsletter!</p>",
		TextBody: "Welcome to our newsletter!",
	})
	require.NoError(t, err)

	require.Equal(t, "test-server-token", gotToken)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/email", gotPath)
	require.Equal(t, "newsletter@example.com", got.From)
	require.Equal(t, "ursula_le_guin@gmail.com", got.To)
	require.Equal(t, "Welcome!", got.Subject)
	require.Equal(t, "<p>Welcome to our newsletter!</p>", got.HTMLBody)
	require.Equal(t, "Welcome to our newsletter!", got.TextBody)
}

func TestSend_ProviderError(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ErrorCode":406,"Message":"Inactive recipient"}`))
	})

	m := newMailer(t, srv.URL, time.Second)

	err := m.Send(context.Background(), mailer.Email{
		To:       "bounced@example.com",
		Subject:  "x",
		HTMLBody: "x",
		TextBody: "x",
	})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
}

func TestSend_ServerFailure(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	m := newMailer(t, srv.URL, time.Second)

	err := m.Send(context.Background(), mailer.Email{
		To:       "someone@example.com",
		Subject:  "x",
		HTMLBody: "x",
		TextBody: "x",
	})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
}

func TestSend_Timeout(t *testing.T) {
	srv := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK"}`))
	})

	m := newMailer(t, srv.URL, 100*time.Millisecond)

	err := m.Send(context.Background(), mailer.Email{
		To:       "someone@example.com",
		Subject:  "x",
		HTMLBody: "x",
		TextBody: "x",
	})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
}
