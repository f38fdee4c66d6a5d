package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
)

func testIssue(t *testing.T) domain.Issue {
	t.Helper()

	issue, err := domain.ParseIssue(
		"Newsletter title",
		"<p>Newsletter body as HTML</p>",
		"Newsletter body as plain text",
	)
	require.NoError(t, err)
	return issue
}

func TestPublisherService(t *testing.T) {
	ctx := context.Background()

	t.Run("DeliversToConfirmedOnly", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		svc := &PublisherService{Store: db, Mailer: outbox}

		seedSubscriber(t, db, "confirmed@example.com", domain.StatusConfirmed)
		seedSubscriber(t, db, "pending@example.com", domain.StatusPendingConfirmation)

		require.NoError(t, svc.Publish(ctx, testIssue(t)))

		sent := outbox.emails()
		require.Len(t, sent, 1)
		require.Equal(t, "confirmed@example.com", sent[0].To)
		require.Equal(t, "Newsletter title", sent[0].Subject)
		require.Equal(t, "<p>Newsletter body as HTML</p>", sent[0].HTMLBody)
		require.Equal(t, "Newsletter body as plain text", sent[0].TextBody)
	})

	t.Run("NoConfirmedSubscribers", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		svc := &PublisherService{Store: db, Mailer: outbox}

		seedSubscriber(t, db, "pending@example.com", domain.StatusPendingConfirmation)

		require.NoError(t, svc.Publish(ctx, testIssue(t)))
		require.Empty(t, outbox.emails())
	})

	t.Run("SkipsInvalidStoredEmail", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		svc := &PublisherService{Store: db, Mailer: outbox}

		// A row persisted under older validation rules can hold an address
		// that no longer parses. It must not poison the whole batch.
		seedSubscriber(t, db, "definitely-not-an-email", domain.StatusConfirmed)
		seedSubscriber(t, db, "valid@example.com", domain.StatusConfirmed)

		require.NoError(t, svc.Publish(ctx, testIssue(t)))

		sent := outbox.emails()
		require.Len(t, sent, 1)
		require.Equal(t, "valid@example.com", sent[0].To)
	})

	t.Run("AbortsOnFirstSendFailure", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		outbox.failAfter = 1
		outbox.failErr = errors.New("provider rejected")
		svc := &PublisherService{Store: db, Mailer: outbox}

		seedSubscriber(t, db, "first@example.com", domain.StatusConfirmed)
		seedSubscriber(t, db, "second@example.com", domain.StatusConfirmed)

		err := svc.Publish(ctx, testIssue(t))
		require.Error(t, err)

		// Delivery stopped at the failure; nothing past it was attempted.
		require.Len(t, outbox.emails(), 1)
	})
}
