package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/mailer"
	"github.com/paperwing/newsletter/pkg/slogx"
)

type PublisherService struct {
	Store  store.Store
	Mailer mailer.Mailer
}

// Publish fans issue out to every confirmed subscriber. A stored address that
// no longer passes validation is skipped with a warning; a send failure aborts
// the remaining recipients and surfaces as an error. The asymmetry is kept
// deliberately: a bad stored row is a data problem local to one subscriber,
// while a send failure usually means the provider is down for everyone.
func (s *PublisherService) Publish(ctx context.Context, issue domain.Issue) error {
	l := slogx.FromContext(ctx)

	addresses, err := s.Store.Subscriptions().ListConfirmedEmails(ctx)
	if err != nil {
		return fmt.Errorf("list confirmed subscribers: %w", err)
	}

	sent := 0
	for _, raw := range addresses {
		email, err := domain.ParseSubscriberEmail(raw)
		if err != nil {
			l.Warn("skipping confirmed subscriber with invalid stored email",
				slog.Any("error", err),
			)
			continue
		}

		if err := s.Mailer.Send(ctx, mailer.Email{
			To:       email.String(),
			Subject:  issue.Title,
			HTMLBody: issue.Content.HTML,
			TextBody: issue.Content.Text,
		}); err != nil {
			return fmt.Errorf("deliver newsletter issue: %w", err)
		}
		sent++
	}

	l.Info("newsletter issue published",
		slog.String("title", issue.Title),
		slog.Int("recipients", sent),
	)
	return nil
}
