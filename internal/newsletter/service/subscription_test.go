package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
)

var linkPattern = regexp.MustCompile(`https?://[^\s"<>]+`)

func TestRegistrarSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		registrar := &RegistrarService{Store: db, Mailer: outbox, BaseURL: "http://localhost:8080"}

		require.NoError(t, registrar.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com"))

		rec, err := db.Subscriptions().GetSubscriberByEmail(ctx, "ursula_le_guin@gmail.com")
		require.NoError(t, err)
		require.Equal(t, "le guin", rec.Name)
		require.Equal(t, domain.StatusPendingConfirmation, rec.Status)

		sent := outbox.emails()
		require.Len(t, sent, 1)
		require.Equal(t, "ursula_le_guin@gmail.com", sent[0].To)
		require.Equal(t, "Welcome!", sent[0].Subject)

		// Both renderings must point at the same confirmation URL.
		htmlLink := linkPattern.FindString(sent[0].HTMLBody)
		textLink := linkPattern.FindString(sent[0].TextBody)
		require.NotEmpty(t, htmlLink)
		require.Equal(t, htmlLink, textLink)
		require.Contains(t, htmlLink, "http://localhost:8080/subscriptions/confirm?subscription_token=")

		// The mailed token resolves to the new subscriber.
		token := htmlLink[len("http://localhost:8080/subscriptions/confirm?subscription_token="):]
		require.Len(t, token, 25)
		id, err := db.SubscriptionTokens().GetSubscriberIDByToken(ctx, token)
		require.NoError(t, err)
		require.Equal(t, rec.ID, id)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		registrar := &RegistrarService{Store: db, Mailer: outbox, BaseURL: "http://localhost:8080"}

		err := registrar.Subscribe(ctx, "", "ursula_le_guin@gmail.com")
		require.ErrorIs(t, err, domain.ErrInvalidSubscriberName)

		err = registrar.Subscribe(ctx, "le guin", "not-an-email")
		require.ErrorIs(t, err, domain.ErrInvalidSubscriberEmail)

		// Nothing persisted, nothing sent.
		_, err = db.Subscriptions().GetSubscriberByEmail(ctx, "ursula_le_guin@gmail.com")
		require.ErrorIs(t, err, store.ErrNotFound)
		require.Empty(t, outbox.emails())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		registrar := &RegistrarService{Store: db, Mailer: outbox, BaseURL: "http://localhost:8080"}

		require.NoError(t, registrar.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com"))

		err := registrar.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
		require.Len(t, outbox.emails(), 1)
	})

	t.Run("SendFailureKeepsCommittedRow", func(t *testing.T) {
		db := newTestStore(t)
		outbox := newRecordingMailer()
		outbox.failAfter = 0
		outbox.failErr = errors.New("smtp down")
		registrar := &RegistrarService{Store: db, Mailer: outbox, BaseURL: "http://localhost:8080"}

		err := registrar.Subscribe(ctx, "le guin", "ursula_le_guin@gmail.com")
		require.Error(t, err)

		// The transaction committed before the send, so the pending
		// subscriber and their token both survive the failure.
		rec, err := db.Subscriptions().GetSubscriberByEmail(ctx, "ursula_le_guin@gmail.com")
		require.NoError(t, err)
		require.Equal(t, domain.StatusPendingConfirmation, rec.Status)
	})
}
