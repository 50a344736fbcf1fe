// Package api provides the webhook ingress HTTP handlers.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/coregx/notifier"
	"github.com/coregx/notifier/model"
)

// Inbound request bodies are capped; notification payloads are small.
const maxRequestBodyBytes = 1 << 20

// Resolver looks up the topic behind a webhook token.
type Resolver interface {
	Resolve(ctx context.Context, token string) (model.Topic, error)
}

// Handler holds dependencies for the webhook ingress.
type Handler struct {
	resolver Resolver
	gateway  notifier.DeliveryGateway
	logger   notifier.Logger
}

// NewHandler creates a new webhook ingress handler.
func NewHandler(resolver Resolver, gateway notifier.DeliveryGateway, logger notifier.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		gateway:  gateway,
		logger:   logger,
	}
}

// HandleNotify handles POST /{token}.
//
// The response protocol is plain text:
//
//	200 "Notification sent"
//	404 "Topic not found"      (unknown and malformed tokens are indistinguishable)
//	400 "No message provided"
//	502 "Failed to send notification"
//	500 "Internal server error"
//
// Upstream diagnostic detail is logged, never echoed to the caller.
// Delivery is not idempotent: re-POSTing the same body re-sends the
// notification.
func (h *Handler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respond(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	token := strings.Trim(r.URL.Path, "/")
	if token == "" || strings.Contains(token, "/") {
		h.respond(w, http.StatusNotFound, "Topic not found")
		return
	}

	topic, err := h.resolver.Resolve(r.Context(), token)
	if err != nil {
		if notifier.IsNoData(err) {
			h.respond(w, http.StatusNotFound, "Topic not found")
			return
		}
		h.logger.Errorf("Failed to resolve token: %v", err)
		h.respond(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		h.logger.Errorf("Failed to read request body: %v", err)
		h.respond(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	message := ExtractMessage(body, r.Header.Get("Content-Type"))
	if message == "" {
		h.respond(w, http.StatusBadRequest, "No message provided")
		return
	}

	if err := h.gateway.Deliver(r.Context(), topic.ChatID, topic.Name, message); err != nil {
		if notifier.IsDelivery(err) {
			h.logger.Errorf("Failed to deliver notification: topic=%s, error=%v", topic.Name, err)
			h.respond(w, http.StatusBadGateway, "Failed to send notification")
			return
		}
		h.logger.Errorf("Unexpected delivery fault: topic=%s, error=%v", topic.Name, err)
		h.respond(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respond(w, http.StatusOK, "Notification sent")
}

// HandleHealth handles GET /health. Used for liveness checks.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respond(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h.respond(w, http.StatusOK, "OK")
}

// respond sends a plain-text response.
func (h *Handler) respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
