// Package mailer wraps the outbound transactional-email provider. The rest
// of the service depends only on the Mailer interface so tests can record
// sends and the dev environment can run without a Postmark account.
package mailer

import (
	"context"
	"errors"
)

// Email is a single outbound message with both renderings of the body.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends a single email synchronously. Any non-nil error means the
// message was not accepted by the provider.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

var (
	ErrSendFailed    = errors.New("mailer: failed to send email")
	ErrInvalidConfig = errors.New("mailer: invalid configuration")
)
