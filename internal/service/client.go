package service

import (
	"encoding/json"

	"ctfchat-backend/internal/model"
)

// Client is one live connection's outbound side. The transport layer owns
// the reader; the hub owns registration, fan-out and closing Send.
type Client struct {
	SessionID string
	Send      chan []byte
}

func NewClient(sessionID string, buffer int) *Client {
	return &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, buffer),
	}
}

// enqueue pushes an encoded event without blocking. Slow consumers drop.
func (c *Client) enqueue(msg []byte) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// MarshalEvent encodes an outbound event envelope.
func MarshalEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(model.WSEvent{Type: event, Data: data})
}
