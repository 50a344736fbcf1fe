package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/notifier"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BotToken: "test-token",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresBotToken(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{BotToken: "   "})
	assert.Error(t, err)
}

func TestNewClient_RequestTimeout(t *testing.T) {
	c, err := NewClient(ClientConfig{BotToken: "t", RequestTimeout: 15 * time.Second})
	require.NoError(t, err)
	hc, ok := c.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 15*time.Second, hc.Timeout)

	c, err = NewClient(ClientConfig{BotToken: "t"})
	require.NoError(t, err)
	hc, ok = c.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, defaultRequestTimeout, hc.Timeout)
}

func TestClient_Deliver(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := client.Deliver(context.Background(), -100123, "alerts", "disk full")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, int64(-100123), gotBody.ChatID)
	assert.Contains(t, gotBody.Text, "alerts")
	assert.Contains(t, gotBody.Text, "disk full")
	assert.Equal(t, "Markdown", gotBody.ParseMode)
}

func TestClient_DeliverFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			},
		},
		{
			name: "ok false with 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"ok":false,"error_code":420,"description":"flood"}`))
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html>nginx</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			err := client.Deliver(context.Background(), 1, "t", "m")
			assert.True(t, notifier.IsDelivery(err), "expected delivery error, got %v", err)
		})
	}
}

func TestClient_DeliverTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The request context is not cancelled until the body has been
		// consumed, and an unread body keeps the connection busy past
		// server shutdown.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.Deliver(ctx, 1, "t", "m")
	assert.True(t, notifier.IsDelivery(err), "expected delivery error, got %v", err)
}

func TestClient_GetUpdates(t *testing.T) {
	var gotBody getUpdatesRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/getUpdates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":7,"message":{"message_id":1,"from":{"id":42},"chat":{"id":-9},"text":"/list"}},
			{"update_id":8}
		]}`))
	})

	updates, err := client.GetUpdates(context.Background(), 7, 25*time.Second)
	require.NoError(t, err)

	assert.Equal(t, int64(7), gotBody.Offset)
	assert.Equal(t, 25, gotBody.Timeout)

	require.Len(t, updates, 2)
	assert.Equal(t, int64(7), updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, int64(42), updates[0].Message.From.ID)
	assert.Equal(t, int64(-9), updates[0].Message.Chat.ID)
	assert.Equal(t, "/list", updates[0].Message.Text)
	assert.Nil(t, updates[1].Message)
}
