package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/cryptox"
	"github.com/paperwing/newsletter/pkg/mailer"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// confirmationTokenLength is the length of the opaque alphanumeric token
// mailed to new subscribers.
const confirmationTokenLength = 25

type RegistrarService struct {
	Store  store.Store
	Mailer mailer.Mailer

	// BaseURL is the public origin of this service, used to build the
	// confirmation link (e.g. "https://newsletter.example.com").
	BaseURL string
}

// Subscribe registers a new pending subscriber and mails them a confirmation
// link. The subscriber row and its token are written in one transaction; the
// email goes out only after the commit, so a send failure leaves a valid
// pending subscription behind rather than rolling it back.
func (s *RegistrarService) Subscribe(ctx context.Context, name, email string) error {
	l := slogx.FromContext(ctx)

	parsedName, err := domain.ParseSubscriberName(name)
	if err != nil {
		return err
	}
	parsedEmail, err := domain.ParseSubscriberEmail(email)
	if err != nil {
		return err
	}

	subscriber := domain.NewSubscriber(parsedEmail, parsedName)

	token, err := cryptox.GenerateAlphanumericToken(confirmationTokenLength)
	if err != nil {
		return fmt.Errorf("generate confirmation token: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Subscriptions().CreateSubscriber(ctx, store.SubscriberRecord{
			ID:           subscriber.ID,
			Email:        subscriber.Email.String(),
			Name:         subscriber.Name.String(),
			Status:       subscriber.Status,
			SubscribedAt: subscriber.SubscribedAt,
		}); err != nil {
			return fmt.Errorf("insert subscriber: %w", err)
		}
		if err := tx.SubscriptionTokens().CreateToken(ctx, token, subscriber.ID); err != nil {
			return fmt.Errorf("store confirmation token: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist new subscriber: %w", err)
	}

	l.Info("new subscriber registered",
		slog.String("subscriber_id", subscriber.ID.String()),
	)

	if err := s.sendConfirmationEmail(ctx, subscriber.Email, token); err != nil {
		// The subscriber is committed. They stay pending with a usable token;
		// report the failure so it is observable.
		return fmt.Errorf("send confirmation email: %w", err)
	}
	return nil
}

func (s *RegistrarService) sendConfirmationEmail(
	ctx context.Context,
	to domain.SubscriberEmail,
	token string,
) error {
	link := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.BaseURL, token)

	return s.Mailer.Send(ctx, mailer.Email{
		To:      to.String(),
		Subject: "Welcome!",
		HTMLBody: fmt.Sprintf(
			"Welcome to our newsletter!<br />Click <a href=\"%s\">here</a> to confirm your subscription.",
			link,
		),
		TextBody: fmt.Sprintf(
			"Welcome to our newsletter!\nVisit %s to confirm your subscription.",
			link,
		),
	})
}
