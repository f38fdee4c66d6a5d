package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus is the confirmation state of a subscriber.
type SubscriberStatus string

const (
	// StatusPendingConfirmation marks a subscriber who registered but has not
	// yet followed their confirmation link. They receive no newsletters.
	StatusPendingConfirmation SubscriberStatus = "pending_confirmation"

	// StatusConfirmed marks a subscriber eligible for newsletter delivery.
	StatusConfirmed SubscriberStatus = "confirmed"
)

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID           uuid.UUID
	Email        SubscriberEmail
	Name         SubscriberName
	Status       SubscriberStatus
	SubscribedAt time.Time
}

// NewSubscriber builds a pending subscriber with a fresh ID and the current
// UTC timestamp.
func NewSubscriber(email SubscriberEmail, name SubscriberName) Subscriber {
	return Subscriber{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Status:       StatusPendingConfirmation,
		SubscribedAt: time.Now().UTC(),
	}
}
