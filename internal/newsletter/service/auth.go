package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/cryptox"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// ErrInvalidCredentials covers both unknown-username and wrong-password
// failures. Callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type CredentialService struct {
	Store store.Store
}

// ValidateCredentials resolves username to a user ID if and only if password
// matches the stored hash.
//
// When the username is unknown, the supplied password is still verified
// against a fixed dummy hash so the response latency is the same as a real
// wrong-password attempt. Without this, an attacker could enumerate usernames
// by timing the fast unknown-username path against the slow argon2 path.
func (s *CredentialService) ValidateCredentials(
	ctx context.Context,
	username, password string,
) (uuid.UUID, error) {
	l := slogx.FromContext(ctx)

	userID := uuid.Nil
	encodedHash := cryptox.DummyHash
	known := false

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		userID = user.ID
		encodedHash = user.PasswordHash
		known = true
	case errors.Is(err, store.ErrNotFound):
		// fall through to the dummy verification
	default:
		return uuid.Nil, fmt.Errorf("look up credentials: %w", err)
	}

	// Argon2 verification is CPU-bound; run it off the request goroutine so
	// the caller can still observe cancellation.
	verified := make(chan error, 1)
	go func() {
		verified <- cryptox.VerifyPassword(password, encodedHash)
	}()

	select {
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	case err = <-verified:
	}

	switch {
	case err == nil && known:
		return userID, nil
	case err == nil, errors.Is(err, cryptox.ErrPasswordMismatch):
		l.Info("credential validation failed", slog.String("username", username))
		return uuid.Nil, ErrInvalidCredentials
	default:
		return uuid.Nil, fmt.Errorf("verify password hash: %w", err)
	}
}
