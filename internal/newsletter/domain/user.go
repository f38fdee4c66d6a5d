package domain

import "github.com/google/uuid"

// User is an operator account allowed to publish newsletters and reach the
// admin surface. PasswordHash is a PHC-encoded argon2id digest and must never
// be logged or serialized.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}
