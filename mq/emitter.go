package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"souq/rdx"
)

// RelayChannel is the Redis pub/sub channel every storefront node
// publishes dashboard events on. The relay hub on each node subscribes
// and fans messages out to its websocket clients.
const RelayChannel = "relay-events"

// Event is the envelope pushed to dashboard sessions. Channel scopes
// who receives it ("dashboard"), Name says what happened
// ("order:new", "order:status", "contact:new").
type Event struct {
	Channel string          `json:"channel"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	At      int64           `json:"at"`
}

// Emit publishes an event, best effort. Delivery is at-least-once at
// most and unordered relative to request handling; consumers tolerate
// both. Failures are logged, never surfaced to the caller.
func Emit(ctx context.Context, channel, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s payload: %v", name, err)
		return
	}

	event := Event{
		Channel: channel,
		Name:    name,
		Payload: data,
		At:      time.Now().Unix(),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", name, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, RelayChannel, raw).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", name, err)
	}
}
