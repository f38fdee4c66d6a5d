package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/internal/newsletter/store/drivers/sqlite"
	"github.com/paperwing/newsletter/pkg/cryptox"
	"github.com/paperwing/newsletter/pkg/mailer"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// recordingMailer captures outbound emails instead of sending them. When
// failAfter is >= 0, the send with that index returns failErr.
type recordingMailer struct {
	mu        sync.Mutex
	sent      []mailer.Email
	failAfter int
	failErr   error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{failAfter: -1}
}

func (m *recordingMailer) Send(_ context.Context, e mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAfter >= 0 && len(m.sent) >= m.failAfter {
		return m.failErr
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) emails() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.sent...)
}

func seedUser(t *testing.T, s store.Store, username, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	u := domain.User{ID: uuid.New(), Username: username, PasswordHash: hash}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedSubscriber(
	t *testing.T,
	s store.Store,
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
	require.NoError(t, s.Subscriptions().CreateSubscriber(context.Background(), rec))
	return rec
}
