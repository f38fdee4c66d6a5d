package mailer

import "time"

// Config holds the Postmark transport configuration. BaseURL is only
// overridden in tests to point the client at a stub server.
type Config struct {
	ServerToken  string
	AccountToken string
	SenderEmail  string
	BaseURL      string
	Timeout      time.Duration
}
