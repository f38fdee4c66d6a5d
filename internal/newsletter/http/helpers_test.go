package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/internal/newsletter/store/drivers/sqlite"
	"github.com/paperwing/newsletter/pkg/cryptox"
	"github.com/paperwing/newsletter/pkg/mailer"
	"github.com/paperwing/newsletter/pkg/sessionx"
)

// recordingMailer captures outbound emails instead of sending them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) emails() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.sent...)
}

type testApp struct {
	router   *Router
	store    store.Store
	outbox   *recordingMailer
	sessions *sessionx.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	outbox := &recordingMailer{}
	sessions := sessionx.NewManager("test-session-secret-with-length", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	credentials := &service.CredentialService{Store: db}
	router := NewRouter("test", db, sessions, logger)
	router.RegistrarService = &service.RegistrarService{
		Store: db, Mailer: outbox, BaseURL: "http://localhost:8080",
	}
	router.ConfirmationService = &service.ConfirmationService{Store: db}
	router.CredentialService = credentials
	router.PublisherService = &service.PublisherService{Store: db, Mailer: outbox}
	router.UserService = &service.UserService{Store: db, Credentials: credentials}
	router.ApplyRoutes()

	return &testApp{router: router, store: db, outbox: outbox, sessions: sessions}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (a *testApp) seedUser(t *testing.T, username, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{ID: uuid.New(), Username: username, PasswordHash: hash}
	require.NoError(t, a.store.Users().CreateUser(context.Background(), u))
	return u
}

func (a *testApp) seedSubscriber(
	t *testing.T,
	email string,
	status domain.SubscriberStatus,
) store.SubscriberRecord {
	t.Helper()

	rec := store.SubscriberRecord{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Seeded Reader",
		Status:       status,
		SubscribedAt: time.Now().UTC(),
	}
	require.NoError(t, a.store.Subscriptions().CreateSubscriber(context.Background(), rec))
	return rec
}
