// Package bot provides the Telegram command front-end for topic
// registration. It is a thin client of the registry: every command maps
// onto one registry operation and no business rules live here.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coregx/notifier"
	"github.com/coregx/notifier/adapters/telegram"
	"github.com/coregx/notifier/model"
)

// retryDelay is how long the poll loop backs off after a getUpdates failure.
const retryDelay = 5 * time.Second

const helpText = `🤖 Welcome to the Notification Bot!

Commands:
• /register <topic_name> - Register a new topic and get a webhook token
• /unregister <topic_name> - Unregister a topic
• /list - List your registered topics
• /help - Show this help message

After registering a topic, you'll get a token that others can use to send you notifications via HTTP POST.`

// RegistryService is the registry surface the bot consumes.
type RegistryService interface {
	Register(ctx context.Context, req notifier.RegisterRequest) (model.Topic, error)
	Unregister(ctx context.Context, ownerID int64, name string) (bool, error)
	ListTopics(ctx context.Context, ownerID int64) ([]model.Topic, error)
}

// ChatAPI is the Telegram surface the bot consumes.
type ChatAPI interface {
	GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text, parseMode string) error
}

// Bot long-polls the Bot API for commands and dispatches them against the
// registry.
type Bot struct {
	registry    RegistryService
	chat        ChatAPI
	logger      notifier.Logger
	publicURL   string
	pollTimeout time.Duration
}

// New creates a command front-end.
// publicURL is the externally reachable webhook base advertised in
// /register replies.
func New(registry RegistryService, chat ChatAPI, logger notifier.Logger, publicURL string, pollTimeout time.Duration) *Bot {
	return &Bot{
		registry:    registry,
		chat:        chat,
		logger:      logger,
		publicURL:   strings.TrimRight(publicURL, "/"),
		pollTimeout: pollTimeout,
	}
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Command bot started")

	var offset int64
	for {
		if ctx.Err() != nil {
			b.logger.Info("Command bot stopped")
			return
		}

		updates, err := b.chat.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				b.logger.Info("Command bot stopped")
				return
			}
			b.logger.Errorf("Failed to poll updates: %v", err)
			select {
			case <-ctx.Done():
				b.logger.Info("Command bot stopped")
				return
			case <-time.After(retryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches a single update. Non-command messages are ignored.
func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || !strings.HasPrefix(msg.Text, "/") {
		return
	}

	command, args := parseCommand(msg.Text)

	var reply string
	switch command {
	case "start", "help":
		reply = helpText
	case "register":
		reply = b.register(ctx, msg.From.ID, msg.Chat.ID, args)
	case "unregister":
		reply = b.unregister(ctx, msg.From.ID, args)
	case "list":
		reply = b.list(ctx, msg.From.ID)
	default:
		return
	}

	if err := b.chat.SendMessage(ctx, msg.Chat.ID, reply, "Markdown"); err != nil {
		b.logger.Errorf("Failed to send reply: chat=%d, error=%v", msg.Chat.ID, err)
	}
}

// parseCommand splits "/register@SomeBot disk alerts" into
// ("register", "disk alerts").
func parseCommand(text string) (command, args string) {
	fields := strings.Fields(text)
	command = strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	return strings.ToLower(command), strings.Join(fields[1:], " ")
}

func (b *Bot) register(ctx context.Context, ownerID, chatID int64, name string) string {
	if name == "" {
		return "Please provide a topic name: /register <topic_name>"
	}

	topic, err := b.registry.Register(ctx, notifier.RegisterRequest{
		OwnerID: ownerID,
		Name:    name,
		ChatID:  chatID,
	})
	if err != nil {
		if notifier.IsAlreadyExists(err) {
			return fmt.Sprintf("❌ Topic '%s' already exists!", name)
		}
		b.logger.Errorf("Failed to register topic: owner=%d, name=%s, error=%v", ownerID, name, err)
		return "❌ Failed to register topic. Please try again."
	}

	return fmt.Sprintf("✅ Topic '%s' registered!\n\n"+
		"🔗 Webhook URL: `%s/%s`\n\n"+
		"Others can now POST to that URL to notify you.",
		name, b.publicURL, topic.Token)
}

func (b *Bot) unregister(ctx context.Context, ownerID int64, name string) string {
	if name == "" {
		return "Please provide a topic name: /unregister <topic_name>"
	}

	removed, err := b.registry.Unregister(ctx, ownerID, name)
	if err != nil {
		b.logger.Errorf("Failed to unregister topic: owner=%d, name=%s, error=%v", ownerID, name, err)
		return "❌ Failed to unregister topic. Please try again."
	}
	if !removed {
		return fmt.Sprintf("❌ Topic '%s' not found!", name)
	}
	return fmt.Sprintf("✅ Topic '%s' unregistered!", name)
}

func (b *Bot) list(ctx context.Context, ownerID int64) string {
	topics, err := b.registry.ListTopics(ctx, ownerID)
	if err != nil {
		b.logger.Errorf("Failed to list topics: owner=%d, error=%v", ownerID, err)
		return "❌ Failed to list topics. Please try again."
	}
	if len(topics) == 0 {
		return "📋 You have no registered topics."
	}

	lines := make([]string, 0, len(topics))
	for _, topic := range topics {
		lines = append(lines, fmt.Sprintf("• %s: `%s`", topic.Name, topic.Token))
	}
	return "📋 Your registered topics:\n\n" + strings.Join(lines, "\n")
}
