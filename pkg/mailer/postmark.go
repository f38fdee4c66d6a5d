package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

type postmarkMailer struct {
	client *postmark.Client
	sender string
}

// NewPostmark creates a Postmark-backed Mailer. The sender address is fixed
// per instance; recipients vary per send.
func NewPostmark(cfg Config) (Mailer, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		// A bounded timeout so a wedged provider surfaces as a failure, not a hang.
		client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &postmarkMailer{client: client, sender: cfg.SenderEmail}, nil
}

func (m *postmarkMailer) Send(ctx context.Context, email Email) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.sender,
		To:       email.To,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
