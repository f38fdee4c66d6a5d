package newsletter_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	httpapi "github.com/paperwing/newsletter/internal/newsletter/http"
	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/internal/newsletter/store/drivers/postgres"
	"github.com/paperwing/newsletter/pkg/mailer"
	"github.com/paperwing/newsletter/pkg/sessionx"
)

/*
 * End-to-end tests running the full HTTP surface against a real postgres
 * instance in a container. Requires a working Docker daemon; use -short to
 * skip.
 */

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "newsletter"
	pgPassword = "newsletter-test-password"
	pgDatabase = "newsletter_test"
)

// startPostgres launches a throwaway postgres container and returns a DSN.
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, host, port.Port(), pgDatabase)
}

// recordingMailer captures outbound emails instead of sending them.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (m *recordingMailer) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) emails() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.sent...)
}

type testEnv struct {
	router *httpapi.Router
	store  store.Store
	outbox *recordingMailer
}

// newTestEnv wires the full service against a containerized postgres.
func newTestEnv(t *testing.T, baseURL string) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	db, err := postgres.NewStore(startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	outbox := &recordingMailer{}
	sessions := sessionx.NewManager("e2e-session-secret-with-length", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	credentials := &service.CredentialService{Store: db}
	router := httpapi.NewRouter("e2e", db, sessions, logger)
	router.RegistrarService = &service.RegistrarService{Store: db, Mailer: outbox, BaseURL: baseURL}
	router.ConfirmationService = &service.ConfirmationService{Store: db}
	router.CredentialService = credentials
	router.PublisherService = &service.PublisherService{Store: db, Mailer: outbox}
	router.UserService = &service.UserService{Store: db, Credentials: credentials}
	router.ApplyRoutes()

	return &testEnv{router: router, store: db, outbox: outbox}
}
