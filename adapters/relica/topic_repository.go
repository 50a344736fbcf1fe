package relica

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coregx/notifier"
	"github.com/coregx/notifier/model"
	"github.com/coregx/relica"
)

// TopicRepository implements notifier.TopicRepository using Relica.
//
// Uniqueness of the token and of (owner_id, topic_name) is enforced by the
// schema; Insert translates the resulting driver errors into the typed
// conflict errors the registry expects.
type TopicRepository struct {
	db          *relica.DB
	tablePrefix string
}

// NewTopicRepository creates a new TopicRepository with default table prefix.
func NewTopicRepository(sqlDB *sql.DB, driverName string) *TopicRepository {
	return &TopicRepository{db: relica.WrapDB(sqlDB, driverName), tablePrefix: "notifier_"}
}

// NewTopicRepositoryWithPrefix creates a new TopicRepository with custom table prefix.
func NewTopicRepositoryWithPrefix(sqlDB *sql.DB, driverName, prefix string) *TopicRepository {
	return &TopicRepository{db: relica.WrapDB(sqlDB, driverName), tablePrefix: prefix}
}

func (r *TopicRepository) tableName() string {
	return r.tablePrefix + "topic"
}

// Insert persists a new topic.
func (r *TopicRepository) Insert(ctx context.Context, m model.Topic) error {
	err := r.db.WithContext(ctx).Model(&m).Table(r.tableName()).Insert()
	if err == nil {
		return nil
	}

	if constraint, ok := uniqueViolation(err); ok {
		if isTokenConstraint(constraint) {
			return notifier.ErrTokenConflict
		}
		return notifier.NewErrorWithCause(notifier.ErrCodeAlreadyExists,
			fmt.Sprintf("topic name already registered: %s", m.Name), err)
	}

	return notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to insert topic", err)
}

// GetByToken retrieves a topic by its token.
func (r *TopicRepository) GetByToken(ctx context.Context, token string) (model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).Select("*").From(r.tableName()).Where("token = ?", token).One(&topic)
	if errors.Is(err, sql.ErrNoRows) {
		return topic, notifier.ErrNoData
	}
	if err != nil {
		return topic, notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to find topic by token", err)
	}
	return topic, nil
}

// GetByOwnerAndName retrieves a topic by owner ID and topic name.
func (r *TopicRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).Select("*").
		From(r.tableName()).
		Where("owner_id = ? AND topic_name = ?", ownerID, name).
		One(&topic)
	if errors.Is(err, sql.ErrNoRows) {
		return topic, notifier.ErrNoData
	}
	if err != nil {
		return topic, notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to find topic by owner and name", err)
	}
	return topic, nil
}

// ListByOwner retrieves all topics registered by an owner, newest first.
func (r *TopicRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Topic, error) {
	var topics []model.Topic

	err := r.db.WithContext(ctx).Select("*").
		From(r.tableName()).
		Where("owner_id = ?", ownerID).
		OrderBy("created_at DESC").
		All(&topics)

	if err != nil {
		return nil, notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to list topics by owner", err)
	}

	if len(topics) == 0 {
		return nil, notifier.ErrNoData
	}

	return topics, nil
}

// DeleteByOwnerAndName permanently removes a topic.
// The single DELETE statement is the serialization point; no prior
// existence check is needed.
func (r *TopicRepository) DeleteByOwnerAndName(ctx context.Context, ownerID int64, name string) (bool, error) {
	result, err := r.db.WithContext(ctx).Delete(r.tableName()).
		Where("owner_id = ? AND topic_name = ?", ownerID, name).
		Execute()
	if err != nil {
		return false, notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to delete topic", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, notifier.NewErrorWithCause(notifier.ErrCodeDatabase, "failed to read delete result", err)
	}

	return affected > 0, nil
}
