package mailer

import (
	"context"
	"log/slog"
)

// DevMailer logs outbound mail instead of sending it. Used when no Postmark
// server token is configured. The text body (and thus the confirmation link)
// is logged on purpose: it is the only way to complete the flow locally.
// Never wire this in production.
type DevMailer struct {
	Logger *slog.Logger
}

func (m *DevMailer) Send(ctx context.Context, email Email) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("dev mailer: email not sent",
		"to", email.To,
		"subject", email.Subject,
		"text_body", email.TextBody,
	)
	return nil
}
