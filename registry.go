package notifier

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/coregx/notifier/model"
)

// defaultMaxTokenAttempts bounds the regenerate-and-retry loop on token
// collision. UUID collisions are practically unreachable, so hitting the
// bound indicates a generator defect rather than bad luck.
const defaultMaxTokenAttempts = 5

// Registry handles the topic lifecycle for the notifier system.
// It layers the business rules on top of the TopicRepository:
//
//   - Register: create a topic with a fresh token, rejecting duplicate names
//   - Unregister: delete a topic by owner and name
//   - ListTopics: query an owner's topics, newest first
//   - Resolve: look up the topic behind an inbound webhook token
//
// Thread safety: safe for concurrent use. The two-step existence check in
// Register is not atomic on its own; the store's unique index on
// (owner_id, name) is what guarantees the second of two racing
// registrations fails.
type Registry struct {
	repo             TopicRepository
	generator        TokenGenerator
	logger           Logger
	maxTokenAttempts int
}

// RegistryOption is a function that configures a Registry.
// Used with the Options Pattern for flexible service construction.
type RegistryOption func(*Registry) error

// NewRegistry creates a new Registry with the provided options.
//
// Required options:
//   - WithRegistryRepository: topic repository
//   - WithRegistryLogger: logger instance
//
// Optional options:
//   - WithTokenGenerator: custom token generator (default: UUIDTokenGenerator)
//   - WithMaxTokenAttempts: collision retry bound (default: 5)
//
// Example:
//
//	registry, err := notifier.NewRegistry(
//	    notifier.WithRegistryRepository(repo),
//	    notifier.WithRegistryLogger(logger),
//	)
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		generator:        UUIDTokenGenerator{},
		maxTokenAttempts: defaultMaxTokenAttempts,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, NewErrorWithCause(ErrCodeConfiguration, "failed to apply registry option", err)
		}
	}

	// Validate required dependencies
	if r.repo == nil {
		return nil, NewError(ErrCodeConfiguration, "TopicRepository is required (use WithRegistryRepository)")
	}
	if r.logger == nil {
		return nil, NewError(ErrCodeConfiguration, "Logger is required (use WithRegistryLogger)")
	}

	return r, nil
}

// WithRegistryRepository sets the topic repository dependency.
// The repository is required and must not be nil.
//
// This is a required option for NewRegistry.
func WithRegistryRepository(repo TopicRepository) RegistryOption {
	return func(r *Registry) error {
		if repo == nil {
			return fmt.Errorf("repo cannot be nil")
		}
		r.repo = repo
		return nil
	}
}

// WithRegistryLogger sets the logger instance for the registry.
// Logger is required and must not be nil.
//
// This is a required option for NewRegistry.
func WithRegistryLogger(logger Logger) RegistryOption {
	return func(r *Registry) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithTokenGenerator sets a custom token generator.
// This is an optional configuration - default is UUIDTokenGenerator.
func WithTokenGenerator(generator TokenGenerator) RegistryOption {
	return func(r *Registry) error {
		if generator == nil {
			return fmt.Errorf("generator cannot be nil")
		}
		r.generator = generator
		return nil
	}
}

// WithMaxTokenAttempts sets the number of token generation attempts before
// Register gives up with ErrCodeTokenExhausted.
// This is an optional configuration - default is 5. Must be > 0.
func WithMaxTokenAttempts(attempts int) RegistryOption {
	return func(r *Registry) error {
		if attempts <= 0 {
			return fmt.Errorf("max token attempts must be > 0, got %d", attempts)
		}
		r.maxTokenAttempts = attempts
		return nil
	}
}

// RegisterRequest represents a request to register a new topic.
type RegisterRequest struct {
	OwnerID int64  // Registering user (required)
	Name    string // Topic name, unique per owner (required)
	ChatID  int64  // Chat to deliver notifications to (required)
}

// Validate checks the register request fields.
func (m RegisterRequest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OwnerID, validation.Required),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&m.ChatID, validation.Required),
	)
}

// Register creates a new topic with a freshly generated token.
//
// The owner's existing topics are checked first and a duplicate name is
// rejected with ErrCodeAlreadyExists. Token collisions at insert are retried
// with a fresh token up to the configured bound; an insert-time name
// conflict (a racing registration that won) also surfaces as
// ErrCodeAlreadyExists.
//
// Returns the persisted topic, including its token.
func (r *Registry) Register(ctx context.Context, req RegisterRequest) (model.Topic, error) {
	if err := req.Validate(); err != nil {
		return model.Topic{}, NewErrorWithCause(ErrCodeValidation, "invalid register request", err)
	}

	// Reject duplicate names up front. Racing registrations that both pass
	// this check are resolved by the store's unique index below.
	_, err := r.repo.GetByOwnerAndName(ctx, req.OwnerID, req.Name)
	if err == nil {
		return model.Topic{}, NewError(ErrCodeAlreadyExists, fmt.Sprintf("topic already exists: %s", req.Name))
	}
	if !IsNoData(err) {
		return model.Topic{}, NewErrorWithCause(ErrCodeDatabase, "failed to check existing topic", err)
	}

	for attempt := 1; attempt <= r.maxTokenAttempts; attempt++ {
		topic := model.NewTopic(r.generator.Generate(), req.OwnerID, req.Name, req.ChatID)

		err = r.repo.Insert(ctx, topic)
		if err == nil {
			r.logger.Infof("Topic registered: owner=%d, name=%s, token=%s", req.OwnerID, req.Name, topic.Token)
			return topic, nil
		}
		if IsTokenConflict(err) {
			r.logger.Warnf("Token collision on insert (attempt %d/%d): owner=%d, name=%s",
				attempt, r.maxTokenAttempts, req.OwnerID, req.Name)
			continue
		}
		if IsAlreadyExists(err) {
			// Lost the race against a concurrent registration for the
			// same (owner, name).
			return model.Topic{}, NewErrorWithCause(ErrCodeAlreadyExists,
				fmt.Sprintf("topic already exists: %s", req.Name), err)
		}
		return model.Topic{}, NewErrorWithCause(ErrCodeDatabase, "failed to insert topic", err)
	}

	r.logger.Errorf("Token generation exhausted after %d attempts: owner=%d, name=%s",
		r.maxTokenAttempts, req.OwnerID, req.Name)
	return model.Topic{}, NewError(ErrCodeTokenExhausted,
		fmt.Sprintf("token generation exhausted after %d attempts", r.maxTokenAttempts))
}

// Unregister removes a topic by owner ID and name.
// This is a hard delete - the token can never be resolved again.
//
// Returns false, without error, when no matching topic exists.
func (r *Registry) Unregister(ctx context.Context, ownerID int64, name string) (bool, error) {
	if ownerID == 0 {
		return false, NewError(ErrCodeValidation, "owner ID is required")
	}
	if name == "" {
		return false, NewError(ErrCodeValidation, "topic name is required")
	}

	removed, err := r.repo.DeleteByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return false, NewErrorWithCause(ErrCodeDatabase, "failed to delete topic", err)
	}

	if removed {
		r.logger.Infof("Topic unregistered: owner=%d, name=%s", ownerID, name)
	}

	return removed, nil
}

// ListTopics returns all topics registered by an owner, newest first.
// Returns empty slice if the owner has no topics (not an error).
func (r *Registry) ListTopics(ctx context.Context, ownerID int64) ([]model.Topic, error) {
	if ownerID == 0 {
		return nil, NewError(ErrCodeValidation, "owner ID is required")
	}

	topics, err := r.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		if IsNoData(err) {
			return []model.Topic{}, nil
		}
		return nil, NewErrorWithCause(ErrCodeDatabase, "failed to list topics", err)
	}

	return topics, nil
}

// Resolve looks up the topic behind an inbound webhook token.
// Returns ErrNoData for an unknown token; a malformed token and a deleted
// token are indistinguishable to the caller.
func (r *Registry) Resolve(ctx context.Context, token string) (model.Topic, error) {
	if token == "" {
		return model.Topic{}, ErrNoData
	}

	topic, err := r.repo.GetByToken(ctx, token)
	if err != nil {
		if IsNoData(err) {
			return model.Topic{}, ErrNoData
		}
		return model.Topic{}, NewErrorWithCause(ErrCodeDatabase, "failed to resolve token", err)
	}

	return topic, nil
}
