// Package telegram provides the Telegram Bot API adapter: the delivery
// gateway used by the webhook ingress and the update polling used by the
// command front-end.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coregx/notifier"
)

const (
	defaultBaseURL        = "https://api.telegram.org"
	defaultRequestTimeout = 30 * time.Second

	// Telegram API responses are small; cap reads so a misbehaving proxy
	// cannot balloon memory.
	maxResponseBodyBytes = 1 << 20
)

// HTTPDoer abstracts the HTTP client so tests can inject a transport.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BotToken       string        // Bot API token (required)
	BaseURL        string        // API base URL, overridable for tests (default: https://api.telegram.org)
	RequestTimeout time.Duration // Per-request timeout (default: 30s)
	HTTPClient     HTTPDoer      // Custom HTTP client (default: http.Client with RequestTimeout)
}

// Client talks to the Telegram Bot API. It implements
// notifier.DeliveryGateway via Deliver and exposes GetUpdates for the
// long-polling command front-end.
//
// Thread safety: safe for concurrent use.
type Client struct {
	botToken   string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a Telegram Bot API client.
// The bot token is required; everything else has defaults.
func NewClient(cfg ClientConfig) (*Client, error) {
	token := strings.TrimSpace(cfg.BotToken)
	if token == "" {
		return nil, notifier.NewError(notifier.ErrCodeConfiguration, "bot token is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		botToken:   token,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// apiResponse is the common envelope of Bot API responses.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
	Result      json.RawMessage `json:"result"`
}

// sendMessageRequest is the payload of the sendMessage method.
type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Update represents an incoming event from getUpdates.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// User is the sender of a message.
type User struct {
	ID int64 `json:"id"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// getUpdatesRequest is the payload of the getUpdates method.
type getUpdatesRequest struct {
	Offset  int64 `json:"offset,omitempty"`
	Timeout int   `json:"timeout,omitempty"`
}

// Deliver implements notifier.DeliveryGateway. It formats the notification
// as a bold title header followed by the message body and sends it to the
// chat. Any failure - non-2xx status, ok:false envelope, timeout or
// connection error - surfaces as a single ErrCodeDelivery error.
func (c *Client) Deliver(ctx context.Context, chatID int64, title, message string) error {
	text := fmt.Sprintf("🔔 **%s**\n\n%s", title, message)
	return c.SendMessage(ctx, chatID, text, "Markdown")
}

// SendMessage calls the sendMessage Bot API method.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text, parseMode string) error {
	var envelope apiResponse
	err := c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}, &envelope)
	if err != nil {
		return err
	}
	return nil
}

// GetUpdates long-polls the Bot API for incoming updates, starting at
// offset. pollTimeout is the server-side hold duration; the request context
// must outlive it.
func (c *Client) GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]Update, error) {
	var envelope apiResponse
	err := c.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:  offset,
		Timeout: int(pollTimeout.Seconds()),
	}, &envelope)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(envelope.Result, &updates); err != nil {
		return nil, notifier.NewErrorWithCause(notifier.ErrCodeDelivery, "failed to decode updates", err)
	}
	return updates, nil
}

// call performs one Bot API method invocation and decodes the envelope.
func (c *Client) call(ctx context.Context, method string, payload interface{}, envelope *apiResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return notifier.NewErrorWithCause(notifier.ErrCodeDelivery, "failed to encode request", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return notifier.NewErrorWithCause(notifier.ErrCodeDelivery, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return notifier.NewErrorWithCause(notifier.ErrCodeDelivery,
			fmt.Sprintf("telegram %s request failed", method), err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return notifier.NewErrorWithCause(notifier.ErrCodeDelivery, "failed to read response", err)
	}

	if err := json.Unmarshal(raw, envelope); err != nil {
		return notifier.NewError(notifier.ErrCodeDelivery,
			fmt.Sprintf("telegram %s returned status %d with undecodable body", method, resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.OK {
		return notifier.NewError(notifier.ErrCodeDelivery,
			fmt.Sprintf("telegram %s failed: status=%d, error_code=%d, description=%s",
				method, resp.StatusCode, envelope.ErrorCode, envelope.Description))
	}

	return nil
}
