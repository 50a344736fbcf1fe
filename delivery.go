package notifier

import "context"

// DeliveryGateway defines the interface for delivering notifications to the
// external messaging platform. This interface decouples the webhook ingress
// from the platform transport (Telegram Bot API in the shipped adapter) and
// enables test doubles.
//
// Implementations handle the outbound HTTP call and must return an
// ErrCodeDelivery error for any failed delivery: a non-success platform
// status, a timeout and a connection error all look the same to callers.
// The gateway does not retry; retry policy belongs to the caller, if
// anywhere.
type DeliveryGateway interface {
	// Deliver sends a notification composed of a title (the topic name)
	// and a message body to the given chat.
	Deliver(ctx context.Context, chatID int64, title, message string) error
}
