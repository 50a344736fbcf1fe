package notifier

import (
	"context"

	"github.com/coregx/notifier/model"
)

// TopicRepository defines the persistence interface for registered topics.
// Topics map an opaque token to an owner, a name and a chat destination.
//
// Implementations must be safe for concurrent use and must enforce two
// uniqueness dimensions at the storage level:
//
//   - token is globally unique (primary key)
//   - (owner_id, name) is unique across all topics
//
// The second constraint closes the check-then-insert race in
// Registry.Register: when two registrations for the same owner and name
// both pass the existence check, the losing insert fails with
// ErrCodeAlreadyExists instead of creating a duplicate row.
type TopicRepository interface {
	// Insert persists a new topic.
	// Returns ErrTokenConflict if the token already exists (the caller's
	// signal to regenerate), an ErrCodeAlreadyExists error if the owner
	// already has a topic with that name.
	Insert(ctx context.Context, m model.Topic) error

	// GetByToken retrieves a topic by its token.
	// Returns ErrNoData if not found.
	GetByToken(ctx context.Context, token string) (model.Topic, error)

	// GetByOwnerAndName retrieves a topic by owner ID and topic name.
	// Returns ErrNoData if not found.
	GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (model.Topic, error)

	// ListByOwner retrieves all topics registered by an owner.
	// Results are ordered by created_at DESC (newest first).
	// Returns ErrNoData if the owner has no topics.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Topic, error)

	// DeleteByOwnerAndName permanently removes a topic.
	// Returns true iff a row was removed. A missing row is not an error.
	DeleteByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error)
}
