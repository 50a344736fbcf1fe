package notifier

import "github.com/google/uuid"

// TokenGenerator produces opaque topic tokens. Tokens must be unguessable
// and collision-free for the expected lifetime volume of the store; the
// registry still verifies uniqueness at insert and retries on conflict.
type TokenGenerator interface {
	// Generate returns a new token. Generation never fails.
	Generate() string
}

// UUIDTokenGenerator generates version 4 UUID tokens (122 random bits,
// textually encoded).
type UUIDTokenGenerator struct{}

// Generate implements TokenGenerator.
func (g UUIDTokenGenerator) Generate() string {
	return uuid.NewString()
}
