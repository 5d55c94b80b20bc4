package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func registerClient(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[client.LenderID]) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPushDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	lenderID := uuid.New()
	client := &Client{Hub: hub, LenderID: lenderID, Send: make(chan []byte, 4)}
	registerClient(t, hub, client)

	hub.Push(lenderID, "application_submitted", map[string]string{"applicationId": "a1"})

	select {
	case data := <-client.Send:
		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "application_submitted", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("expected a pushed event")
	}
}

func TestPushDropsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	lenderID := uuid.New()
	client := &Client{Hub: hub, LenderID: lenderID, Send: make(chan []byte)}
	registerClient(t, hub, client)

	// An unbuffered Send with no reader forces the drop path.
	assert.NotPanics(t, func() {
		hub.Push(lenderID, "application_submitted", map[string]string{"applicationId": "a1"})
	})

	// The unregister branch closes Send exactly once and removes the client.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-client.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[lenderID]) == 0
	}, time.Second, 5*time.Millisecond)
}
