package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (postgres, sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Subscriptions() Subscriptions
	SubscriptionTokens() SubscriptionTokens
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., inserting a
	// subscriber together with their confirmation token).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// SubscriberRecord is the persisted shape of a subscriber. Email and name are
// stored as raw strings; callers re-validate on the way out when it matters
// (e.g., before sending a newsletter to an address persisted under older
// validation rules).
type SubscriberRecord struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Status       domain.SubscriberStatus
	SubscribedAt time.Time
}

type Subscriptions interface {
	// CreateSubscriber inserts a new subscriber row. Returns ErrAlreadyExists
	// when the email is already registered.
	CreateSubscriber(ctx context.Context, s SubscriberRecord) error

	// GetSubscriberByEmail fetches a subscriber by their email address.
	GetSubscriberByEmail(ctx context.Context, email string) (SubscriberRecord, error)

	// ConfirmSubscriber flips the status to confirmed. Confirming an already
	// confirmed subscriber is a no-op, not an error.
	ConfirmSubscriber(ctx context.Context, id uuid.UUID) error

	// ListConfirmedEmails returns the email addresses of all confirmed
	// subscribers.
	ListConfirmedEmails(ctx context.Context) ([]string, error)
}

type SubscriptionTokens interface {
	// CreateToken associates an opaque confirmation token with a subscriber.
	CreateToken(ctx context.Context, token string, subscriberID uuid.UUID) error

	// GetSubscriberIDByToken resolves a confirmation token to its subscriber.
	GetSubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error)
}

type Users interface {
	// GetUserByUsername is used during credential validation.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new operator account.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2).
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newHash string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
