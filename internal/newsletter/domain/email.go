package domain

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ErrInvalidSubscriberEmail reports an address that failed validation. The
// wrapped message is safe to echo back to the submitter.
var ErrInvalidSubscriberEmail = errors.New("invalid subscriber email")

// SubscriberEmail is a syntactically valid email address. The zero value is
// invalid; ParseSubscriberEmail is the only constructor.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail validates raw as an email address and wraps it.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if err := validation.Validate(raw, validation.Required, is.EmailFormat); err != nil {
		return SubscriberEmail{}, fmt.Errorf("%w: %v", ErrInvalidSubscriberEmail, err)
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the underlying validated address.
func (e SubscriberEmail) String() string { return e.value }
