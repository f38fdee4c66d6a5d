package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/pkg/slogx"
)

// ErrUnknownToken means the confirmation token resolved to nothing. Callers
// surface it as an authorization failure without saying whether the token
// never existed or was minted for a subscriber that has since vanished.
var ErrUnknownToken = errors.New("unknown_subscription_token")

type ConfirmationService struct {
	Store store.Store
}

// Confirm resolves token to a subscriber and marks them confirmed. Confirming
// an already confirmed subscriber succeeds again; tokens stay resolvable
// forever. That means a leaked token remains usable indefinitely, a known
// limitation carried over rather than quietly fixed with expiry.
func (s *ConfirmationService) Confirm(ctx context.Context, token string) error {
	l := slogx.FromContext(ctx)

	subscriberID, err := s.Store.SubscriptionTokens().GetSubscriberIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("resolve confirmation token: %w", err)
	}

	if err := s.Store.Subscriptions().ConfirmSubscriber(ctx, subscriberID); err != nil {
		// A token row pointing at a missing subscriber is a broken invariant,
		// not a bad token.
		return fmt.Errorf("confirm subscriber: %w", err)
	}

	l.Info("subscriber confirmed", slog.String("subscriber_id", subscriberID.String()))
	return nil
}
