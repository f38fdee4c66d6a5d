package newsletter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/pkg/cryptox"
)

var confirmLinkPattern = regexp.MustCompile(`https?://[^\s"<>]+`)

func postForm(env *testEnv, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// TestSubscribeConfirmPublish walks the whole double-opt-in lifecycle: a
// reader registers, confirms via the mailed link, and then receives a
// published issue.
func TestSubscribeConfirmPublish(t *testing.T) {
	env := newTestEnv(t, "http://newsletter.test")
	ctx := context.Background()

	// 1. Register a subscriber.
	rec := postForm(env, "/subscriptions", url.Values{
		"name":  {"le guin"},
		"email": {"ursula_le_guin@gmail.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	sub, err := env.store.Subscriptions().GetSubscriberByEmail(ctx, "ursula_le_guin@gmail.com")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPendingConfirmation, sub.Status)

	// 2. Extract the confirmation link from the welcome email.
	sent := env.outbox.emails()
	require.Len(t, sent, 1)
	link := confirmLinkPattern.FindString(sent[0].TextBody)
	require.True(t, strings.HasPrefix(link, "http://newsletter.test/subscriptions/confirm"))
	path := strings.TrimPrefix(link, "http://newsletter.test")

	// 3. A publish before confirmation reaches nobody.
	seedOperator(t, env, "editor", "correcthorsebatterystaple")
	publishIssue(t, env, "editor", "correcthorsebatterystaple", http.StatusOK)
	require.Len(t, env.outbox.emails(), 1) // still just the welcome email

	// 4. Confirm, twice for idempotence.
	for range 2 {
		confirmRec := httptest.NewRecorder()
		env.router.ServeHTTP(confirmRec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, confirmRec.Code)
	}

	sub, err = env.store.Subscriptions().GetSubscriberByEmail(ctx, "ursula_le_guin@gmail.com")
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, sub.Status)

	// 5. Publish again; the confirmed subscriber now receives the issue.
	publishIssue(t, env, "editor", "correcthorsebatterystaple", http.StatusOK)

	all := env.outbox.emails()
	require.Len(t, all, 2)
	issue := all[1]
	require.Equal(t, "ursula_le_guin@gmail.com", issue.To)
	require.Equal(t, "Edition #1", issue.Subject)
}

func seedOperator(t *testing.T, env *testEnv, username, password string) {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, env.store.Users().CreateUser(context.Background(), domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}))
}

func publishIssue(t *testing.T, env *testEnv, username, password string, wantCode int) {
	t.Helper()

	body := `{"title": "Edition #1", "content": {"html": "<p>Hello</p>", "text": "Hello"}}`
	req := httptest.NewRequest(http.MethodPost, "/newsletters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(username, password)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, wantCode, rec.Code)
}

// TestDuplicateRegistrationConflicts pins the storage-level unique constraint
// surfacing as an unexpected error rather than a second pending row.
func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := newTestEnv(t, "http://newsletter.test")

	form := url.Values{"name": {"le guin"}, "email": {"ursula_le_guin@gmail.com"}}
	rec := postForm(env, "/subscriptions", form)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postForm(env, "/subscriptions", form)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, env.outbox.emails(), 1)
}
