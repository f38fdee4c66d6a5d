package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/cryptox"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128
)

var (
	// ErrPasswordCheckMismatch means the two copies of the new password differ.
	ErrPasswordCheckMismatch = errors.New("password_check_mismatch")

	// ErrPasswordLength means the new password falls outside the accepted
	// 12 to 128 character range. Short ones are guessable, absurdly long
	// ones are an argon2 denial-of-service vector.
	ErrPasswordLength = errors.New("password_length")
)

type UserService struct {
	Store       store.Store
	Credentials *CredentialService
}

// ChangePassword rotates username's password after re-validating the current
// one. Returns ErrInvalidCredentials when the current password is wrong.
func (s *UserService) ChangePassword(
	ctx context.Context,
	username, currentPassword, newPassword, newPasswordCheck string,
) error {
	if newPassword != newPasswordCheck {
		return ErrPasswordCheckMismatch
	}
	// Counted in characters, not bytes, so multibyte passwords are not
	// over-credited for length.
	if n := utf8.RuneCountInString(newPassword); n < minPasswordLength || n > maxPasswordLength {
		return ErrPasswordLength
	}

	userID, err := s.Credentials.ValidateCredentials(ctx, username, currentPassword)
	if err != nil {
		return err
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}
