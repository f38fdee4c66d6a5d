package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/cryptox"
	"github.com/paperwing/newsletter/pkg/slogx"
)

type BootstrapService struct {
	Store store.Store

	// Seed credentials for the first operator account, taken from
	// configuration. Both must be set for provisioning to happen.
	AdminUsername string
	AdminPassword string
}

// EnsureAdmin seeds the first operator account when the users table is empty.
// It is a no-op when users already exist or when no seed credentials were
// configured, so restarts and horizontal scaling stay safe.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check for existing users: %w", err)
	}
	if !empty {
		return nil
	}

	if s.AdminUsername == "" || s.AdminPassword == "" {
		l.Warn("no users exist and no admin credentials configured; publishing is unusable until one is created")
		return nil
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           uuid.New(),
		Username:     s.AdminUsername,
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	l.Info("admin user provisioned")
	return nil
}
